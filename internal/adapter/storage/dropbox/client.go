package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/NewsApp/internal/config"
)

const (
	apiBaseURL     = "https://api.dropboxapi.com"     // RPC-эндпоинты (sharing, delete)
	contentBaseURL = "https://content.dropboxapi.com" // content-эндпоинты (upload)

	sharedLinkExistsSummary = "shared_link_already_exists"
)

// Client представляет клиент для взаимодействия с Dropbox API.
// Реализует порт ports.FileStorage.
type Client struct {
	httpClient  *http.Client
	accessToken string

	// базовые URL вынесены в поля, чтобы тесты могли подменить их на httptest-сервер
	apiBase     string
	contentBase string
}

// NewClient создает новый экземпляр Dropbox Client.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		// таймаут не ставим: загрузка до 70 МиБ может идти дольше любого разумного фиксированного лимита,
		// отмена выполняется через контекст запроса
		httpClient:  &http.Client{},
		accessToken: cfg.DropboxAccessToken,
		apiBase:     apiBaseURL,
		contentBase: contentBaseURL,
	}
}

// NormalizeSharedLink переписывает shared-ссылку Dropbox в direct-download форму:
// хост web-просмотрщика заменяется на хост сырого контента, а маркер предпросмотра
// "?dl=0" — на маркер "?raw=1". Преобразование чисто текстовое и идемпотентное.
func NormalizeSharedLink(link string) string {
	link = strings.Replace(link, "www.dropbox.com", "dl.dropboxusercontent.com", 1)
	link = strings.Replace(link, "?dl=0", "?raw=1", 1)
	return link
}

// UploadFile загружает файл в Dropbox по пути key и возвращает публичный
// direct-download URL. Если shared-ссылка для пути уже существует (легитимный
// случай при повторном использовании пути), берется первая из существующих.
func (c *Client) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	uploaded, err := c.upload(ctx, key, reader)
	if err != nil {
		return "", err
	}

	link, err := c.createSharedLink(ctx, uploaded.PathDisplay)
	if err != nil {
		return "", err
	}

	return NormalizeSharedLink(link), nil
}

// upload выполняет запрос к content-эндпоинту /2/files/upload.
func (c *Client) upload(ctx context.Context, path string, reader io.Reader) (*uploadResponse, error) {
	apiArg, err := json.Marshal(pathArg{Path: path})
	if err != nil {
		return nil, fmt.Errorf("dropbox: ошибка маршалинга аргумента загрузки: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.contentBase+"/2/files/upload", reader)
	if err != nil {
		return nil, fmt.Errorf("dropbox: ошибка создания HTTP-запроса загрузки: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Dropbox-API-Arg", string(apiArg))
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dropbox: ошибка выполнения запроса загрузки: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("dropbox: загрузка вернула статус %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("dropbox: ошибка декодирования ответа загрузки: %w", err)
	}
	return &uploaded, nil
}

// createSharedLink запрашивает публичную shared-ссылку для пути. Если провайдер
// сообщает, что ссылка уже существует, возвращается первая из существующих ссылок.
func (c *Client) createSharedLink(ctx context.Context, path string) (string, error) {
	var created sharedLinkResponse
	status, errSummary, err := c.rpc(ctx, "/2/sharing/create_shared_link_with_settings", pathArg{Path: path}, &created)
	if err != nil {
		return "", err
	}
	if status == http.StatusOK {
		return created.URL, nil
	}

	if !strings.Contains(errSummary, sharedLinkExistsSummary) {
		return "", fmt.Errorf("dropbox: создание shared-ссылки вернуло статус %d: %s", status, errSummary)
	}

	// Ссылка уже существует — запрашиваем список существующих и берем первую
	var existing listSharedLinksResponse
	status, errSummary, err = c.rpc(ctx, "/2/sharing/list_shared_links", pathArg{Path: path}, &existing)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("dropbox: получение списка shared-ссылок вернуло статус %d: %s", status, errSummary)
	}
	if len(existing.Links) == 0 {
		return "", fmt.Errorf("dropbox: провайдер сообщил о существующей shared-ссылке для %s, но список пуст", path)
	}
	return existing.Links[0].URL, nil
}

// DeleteFile удаляет файл из Dropbox по его пути.
func (c *Client) DeleteFile(ctx context.Context, key string) error {
	status, errSummary, err := c.rpc(ctx, "/2/files/delete_v2", pathArg{Path: key}, &struct{}{})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("dropbox: удаление файла %s вернуло статус %d: %s", key, status, errSummary)
	}
	return nil
}

// rpc выполняет JSON-запрос к RPC-эндпоинту Dropbox. При неуспешном статусе
// декодирует error_summary из тела ошибки и возвращает его вызывающей стороне.
func (c *Client) rpc(ctx context.Context, endpoint string, arg interface{}, out interface{}) (int, string, error) {
	body, err := json.Marshal(arg)
	if err != nil {
		return 0, "", fmt.Errorf("dropbox: ошибка маршалинга аргумента %s: %w", endpoint, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.apiBase+endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("dropbox: ошибка создания HTTP-запроса %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("dropbox: ошибка выполнения запроса %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		bodyBytes, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(bodyBytes, &apiErr); err != nil {
			// тело не в формате API-ошибки — возвращаем как есть
			return resp.StatusCode, string(bodyBytes), nil
		}
		return resp.StatusCode, apiErr.ErrorSummary, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, "", fmt.Errorf("dropbox: ошибка декодирования ответа %s: %w", endpoint, err)
	}
	return resp.StatusCode, "", nil
}
