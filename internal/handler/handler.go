package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/GoArmGo/NewsApp/internal/domain"
	"github.com/GoArmGo/NewsApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// multipartMemoryLimit — сколько байт формы держится в памяти до сброса на диск.
// Сам лимит размера файла (70 МиБ) проверяется бизнес-логикой по заголовку части.
const multipartMemoryLimit = 32 << 20

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// AuthHandler — обработчик HTTP-запросов регистрации и входа.
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(uc usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authUseCase: uc, logger: logger}
}

// Login — выпускает токен доступа по username/password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"}, h.logger)
		return
	}

	if req.Username == "" || req.Password == "" {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Username and password are required"}, h.logger)
		return
	}

	token, err := h.authUseCase.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondWithJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"}, h.logger)
			return
		}
		h.logger.Error("login failed", "username", req.Username, "error", err)
		respondWithJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"}, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"accessToken": token}, h.logger)
}

// CreateUser — регистрирует нового пользователя.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"}, h.logger)
		return
	}

	user, err := h.authUseCase.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var validationErr *usecase.ValidationError
		var conflictErr *usecase.ConflictError
		switch {
		case errors.As(err, &validationErr):
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Username, email, and password are required"}, h.logger)
		case errors.As(err, &conflictErr):
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": conflictErr.Error()}, h.logger)
		default:
			h.logger.Error("create user failed", "username", req.Username, "error", err)
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"}, h.logger)
		}
		return
	}

	// Пароль не сериализуется: у domain.User на хеше стоит json:"-"
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	}, h.logger)
}

// NewsHandler — обработчик HTTP-запросов для работы с новостями.
type NewsHandler struct {
	newsUseCase usecase.NewsUseCase
	logger      *slog.Logger
}

// NewNewsHandler создаёт новый экземпляр NewsHandler.
func NewNewsHandler(uc usecase.NewsUseCase, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{newsUseCase: uc, logger: logger}
}

// formFile извлекает файл изображения из multipart-формы.
// Отсутствие файла не является ошибкой: возвращается nil.
func formFile(r *http.Request) (*usecase.UploadFile, multipart.File, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return &usecase.UploadFile{
		Content:     file,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, file, nil
}

// actor возвращает имя аутентифицированного пользователя для логов
// мутирующих операций. Вне защищенных маршрутов возвращает пустую строку.
func actor(r *http.Request) string {
	claims, ok := IdentityFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.Username
}

// writeNewsError отображает ошибки бизнес-логики новостей в статус-коды.
func (h *NewsHandler) writeNewsError(w http.ResponseWriter, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.Is(err, usecase.ErrNoFile):
		respondWithError(w, http.StatusBadRequest, "No file uploaded", h.logger)
	case errors.Is(err, usecase.ErrPayloadTooLarge):
		respondWithError(w, http.StatusBadRequest, "File size exceeds 70MB limit", h.logger)
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), h.logger)
	case errors.Is(err, usecase.ErrNotFound):
		respondWithJSON(w, http.StatusNotFound, map[string]string{"message": "News not found"}, h.logger)
	case errors.Is(err, usecase.ErrUploadFailed):
		h.logger.Error("image upload failed", "error", err)
		respondWithError(w, http.StatusBadRequest, "Failed to upload image", h.logger)
	default:
		h.logger.Error("news operation failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}

// CreateNews — создает новость с обязательным файлом изображения.
func (h *NewsHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form", h.logger)
		return
	}

	upload, file, err := formFile(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid image file", h.logger)
		return
	}
	if file != nil {
		defer file.Close()
	}

	input := usecase.CreateNewsInput{
		Title: r.FormValue("title"),
		Text:  r.FormValue("text"),
		Place: r.FormValue("place"),
		File:  upload,
	}

	news, err := h.newsUseCase.CreateNews(r.Context(), input)
	if err != nil {
		h.writeNewsError(w, err)
		return
	}

	h.logger.Info("news created", "id", news.ID, "user", actor(r))
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "done",
		"news":    news,
	}, h.logger)
}

// ListNews — возвращает все новости по убыванию даты создания.
// Пагинация опциональна: без page/per_page возвращаются все записи.
func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	news, err := h.newsUseCase.ListNews(r.Context(), page, perPage)
	if err != nil {
		h.writeNewsError(w, err)
		return
	}
	if news == nil {
		news = []domain.News{}
	}

	respondWithJSON(w, http.StatusOK, news, h.logger)
}

// GetNews — возвращает новость по ID.
func (h *NewsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// некорректный идентификатор неотличим от отсутствующего
		respondWithJSON(w, http.StatusNotFound, map[string]string{"message": "News not found"}, h.logger)
		return
	}

	news, err := h.newsUseCase.GetNews(r.Context(), id)
	if err != nil {
		h.writeNewsError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, news, h.logger)
}

// UpdateNews — частичное обновление: опущенные поля сохраняют прежние значения,
// изображение заменяется только при наличии нового файла.
func (h *NewsHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithJSON(w, http.StatusNotFound, map[string]string{"message": "News not found"}, h.logger)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form", h.logger)
		return
	}

	upload, file, err := formFile(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid image file", h.logger)
		return
	}
	if file != nil {
		defer file.Close()
	}

	input := usecase.UpdateNewsInput{
		Title: r.FormValue("title"),
		Text:  r.FormValue("text"),
		Place: r.FormValue("place"),
		File:  upload,
	}

	news, err := h.newsUseCase.UpdateNews(r.Context(), id, input)
	if err != nil {
		h.writeNewsError(w, err)
		return
	}

	h.logger.Info("news updated", "id", id, "user", actor(r))
	respondWithJSON(w, http.StatusOK, news, h.logger)
}

// DeleteNews — удаляет новость по ID.
func (h *NewsHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithJSON(w, http.StatusNotFound, map[string]string{"message": "News not found"}, h.logger)
		return
	}

	if err := h.newsUseCase.DeleteNews(r.Context(), id); err != nil {
		h.writeNewsError(w, err)
		return
	}

	h.logger.Info("news deleted", "id", id, "user", actor(r))
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "News deleted"}, h.logger)
}
