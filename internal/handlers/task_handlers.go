package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/middleware"
	"taskBoard/internal/models"
	"taskBoard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

// GET /api/tasks — личные задачи вызывающего
func (s *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID := middleware.GetUserID(r.Context())
	sortBy := models.ParseTaskSort(r.URL.Query().Get("sortBy"))

	tasks, err := s.TaskService.ListPersonalTasks(r.Context(), userID, sortBy)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		handleUnexpectedError(w, err, "list_tasks")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

// POST /api/tasks — создание задачи с явным workspace
func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if request.Title == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	userID := middleware.GetUserID(r.Context())

	task, err := s.TaskService.CreateTask(r.Context(), userID, service.CreateTaskParams{
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
		Priority:    request.Priority,
		Workspace:   request.Workspace,
		TeamID:      request.Team,
	})
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		handleUnexpectedError(w, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", task.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(task))
}

// GET /api/tasks/{id} — задачи команды; сегмент пути здесь — id команды
func (s *TaskHandler) ListTeamTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	teamID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())

	tasks, err := s.TaskService.ListTeamTasks(r.Context(), userID, teamID)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		handleUnexpectedError(w, err, "list_team_tasks")
		return
	}

	logger.Info("HTTP_OUT: Задачи команды получены",
		zap.String("team_id", teamID.String()),
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTeamTaskList(tasks))
}

// POST /api/tasks/{id} — создание задачи в команде; сегмент пути — id команды
func (s *TaskHandler) PostTeamTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	teamID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.TeamTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if request.Title == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	userID := middleware.GetUserID(r.Context())

	task, err := s.TaskService.CreateTeamTask(r.Context(), userID, teamID, service.TeamTaskParams{
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
		Priority:    request.Priority,
	})
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		handleUnexpectedError(w, err, "create_team_task")
		return
	}

	logger.Info("HTTP_OUT: Задача команды создана",
		zap.String("task_id", task.ID.String()),
		zap.String("team_id", teamID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(task))
}

// PUT /api/tasks/{id} — частичное обновление; отсутствующие поля не трогаются
func (s *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	taskID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	userID := middleware.GetUserID(r.Context())

	task, err := s.TaskService.UpdateTask(r.Context(), userID, taskID, request.Options()...)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		handleUnexpectedError(w, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", taskID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(task))
}

// PUT /api/tasks/{id}/status — переключение completed; владелец не проверяется
func (s *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	taskID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var request dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if request.Completed == nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "completed"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "Completed is required")
		return
	}

	task, err := s.TaskService.UpdateTaskStatus(r.Context(), taskID, *request.Completed)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		handleUnexpectedError(w, err, "update_task_status")
		return
	}

	logger.Info("HTTP_OUT: Статус задачи обновлён",
		zap.String("task_id", taskID.String()),
		zap.Bool("completed", task.Completed),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(task))
}

// DELETE /api/tasks/{id}
func (s *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	taskID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())

	if err := s.TaskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		handleUnexpectedError(w, err, "delete_task")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", taskID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithMsg(w, http.StatusOK, "Task removed")
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось получить id: "+err.Error())
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return uuid.Nil, false
	}

	return id, true
}
