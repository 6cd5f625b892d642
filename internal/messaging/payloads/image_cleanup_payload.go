package payloads

// ImageCleanupPayload — задача на удаление объекта из файлового хранилища.
// Публикуется при замене изображения новости или удалении самой новости.
type ImageCleanupPayload struct {
	ObjectKey string `json:"object_key"`
	Reason    string `json:"reason"`
}
