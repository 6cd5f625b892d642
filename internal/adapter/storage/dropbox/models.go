package dropbox

// uploadResponse — ответ Dropbox API на /2/files/upload.
type uploadResponse struct {
	Name        string `json:"name"`
	PathDisplay string `json:"path_display"`
	ID          string `json:"id"`
	Size        int64  `json:"size"`
}

// sharedLinkResponse — ответ на /2/sharing/create_shared_link_with_settings.
type sharedLinkResponse struct {
	URL string `json:"url"`
}

// listSharedLinksResponse — ответ на /2/sharing/list_shared_links.
type listSharedLinksResponse struct {
	Links []sharedLinkResponse `json:"links"`
}

// apiError — тело ошибки Dropbox API (нас интересует только error_summary).
type apiError struct {
	ErrorSummary string `json:"error_summary"`
}

// pathArg — общий аргумент запросов, адресующих файл по пути.
type pathArg struct {
	Path string `json:"path"`
}
