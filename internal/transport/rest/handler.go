// Package rest provides HTTP handlers for producto operations.
package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	perrors "github.com/andreastrap/productos/internal/errors"
	"github.com/andreastrap/productos/internal/service"
	"github.com/andreastrap/productos/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type Handler struct {
	service  service.ProductoService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler with the provided service.
func NewHandler(service service.ProductoService, logger *slog.Logger) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	return &Handler{
		service:  service,
		validate: validate,
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the productos resource.
// Static segments take precedence over /{id} in chi, so /count and /buscar/... never reach FindByID.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/productos", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/count", h.Count)

		r.Get("/buscar/nombre/{nombre}", h.FindByNombre)
		r.Get("/buscar/precio", h.FindByPrecioRange)

		r.Get("/ordenar/precio", h.FindAllOrderByPrecio)
		r.Get("/ordenar/nombre", h.FindAllOrderByNombre)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAll lists every producto.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to find all productos")
	list, err := h.service.FindAll(r.Context())
	h.respondList(w, r, list, err)
}

// FindByID retrieves a producto by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductoNotFound) {
			h.logger.WarnContext(r.Context(), "Producto not found", "ID", id)
			web.RespondStatus(w, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error retrieving producto", "ID", id, "error", err)
		web.RespondStatus(w, http.StatusInternalServerError)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Create validates the body, rejects a nombre already in use (ignoring case) and stores the producto.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if !h.valid(w, r, req) {
		return
	}

	exists, err := h.service.ExistsByNombre(r.Context(), *req.Nombre)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error checking producto nombre", "error", err)
		web.RespondStatus(w, http.StatusInternalServerError)
		return
	}
	if exists {
		h.logger.WarnContext(r.Context(), "Producto nombre already exists", "nombre", *req.Nombre)
		web.RespondStatus(w, http.StatusConflict)
		return
	}

	created, err := h.service.Save(r.Context(), service.ProductoDto{Nombre: *req.Nombre, Precio: *req.Precio})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error creating producto", "error", err)
		web.RespondStatus(w, http.StatusInternalServerError)
		return
	}
	h.logger.InfoContext(r.Context(), "Producto created successfully", "ID", created.ID, "nombre", created.Nombre)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// Update overwrites nombre and precio of an existing producto. Existence is checked before the body is validated.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	existing, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, id, err)
		return
	}
	if !h.valid(w, r, req) {
		return
	}

	existing.Nombre = *req.Nombre
	existing.Precio = *req.Precio
	updated, err := h.service.Save(r.Context(), *existing)
	if err != nil {
		h.respondLookupError(w, r, id, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Producto updated successfully", "ID", updated.ID, "nombre", updated.Nombre)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteByID deletes a producto by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error deleting producto", "ID", id, "error", err)
		web.RespondStatus(w, http.StatusInternalServerError)
		return
	}
	if !deleted {
		h.logger.WarnContext(r.Context(), "Producto not found for deletion", "ID", id)
		web.RespondStatus(w, http.StatusNotFound)
		return
	}
	h.logger.InfoContext(r.Context(), "Producto deleted successfully", "ID", id)
	web.RespondStatus(w, http.StatusNoContent)
}

// FindByNombre searches productos whose nombre contains the path segment, ignoring case.
func (h *Handler) FindByNombre(w http.ResponseWriter, r *http.Request) {
	nombre := r.PathValue("nombre")
	list, err := h.service.FindByNombreContaining(r.Context(), nombre)
	h.respondList(w, r, list, err)
}

// FindByPrecioRange lists productos with min <= precio <= max.
func (h *Handler) FindByPrecioRange(w http.ResponseWriter, r *http.Request) {
	minPrecio, ok := web.ParseValidateFloatGte(r, w, h.logger, "min", 0)
	if !ok {
		return
	}
	maxPrecio, ok := web.ParseValidateFloatGte(r, w, h.logger, "max", 0)
	if !ok {
		return
	}
	if minPrecio > maxPrecio {
		h.logger.WarnContext(r.Context(), "Invalid precio range", "min", minPrecio, "max", maxPrecio)
		web.RespondStatus(w, http.StatusBadRequest)
		return
	}
	list, err := h.service.FindByPrecioRange(r.Context(), minPrecio, maxPrecio)
	h.respondList(w, r, list, err)
}

func (h *Handler) FindAllOrderByPrecio(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.FindAllOrderByPrecio(r.Context())
	h.respondList(w, r, list, err)
}

func (h *Handler) FindAllOrderByNombre(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.FindAllOrderByNombre(r.Context())
	h.respondList(w, r, list, err)
}

// Count returns the number of productos as a bare JSON integer.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error counting productos", "error", err)
		web.RespondStatus(w, http.StatusInternalServerError)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, count)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (service.ProductoRequestDto, bool) {
	var req service.ProductoRequestDto
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondStatus(w, http.StatusBadRequest)
		return req, false
	}
	// the body must hold exactly one JSON value
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		h.logger.WarnContext(r.Context(), "Unexpected data after request body", "error", err)
		web.RespondStatus(w, http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *Handler) valid(w http.ResponseWriter, r *http.Request, req service.ProductoRequestDto) bool {
	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorFields := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorFields[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorFields)
		} else {
			h.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		}
		web.RespondStatus(w, http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) respondLookupError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, perrors.ErrProductoNotFound) {
		h.logger.WarnContext(r.Context(), "Producto not found for update", "ID", id)
		web.RespondStatus(w, http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), "Error updating producto", "ID", id, "error", err)
	web.RespondStatus(w, http.StatusInternalServerError)
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, list []service.ProductoDto, err error) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving producto list", "error", err)
		web.RespondStatus(w, http.StatusInternalServerError)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved producto list", "count", len(list))
	web.RespondList(w, h.logger, list)
}
