package listener

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/0xalexb/hjarta-nullcfg/config"
	yamlparser "github.com/0xalexb/hjarta-nullcfg/config/parser/yaml"
	"github.com/0xalexb/hjarta-nullcfg/store"
)

// KindHeader carries the kind of the addressed node: value, null or section.
const KindHeader = "X-Config-Kind"

const (
	contentTypeYAML = "application/yaml"
	contentTypeJSON = "application/json"
)

type handler struct {
	store       *store.Store
	codec       *yamlparser.Parser
	contentType string
}

// NewHandler returns the HTTP API for st:
//
//	GET    /config          whole tree
//	GET    /config/{path}   value, null or section at path; 404 when absent
//	PUT    /config/{path}   set path to the YAML document in the body
//	POST   /config/{path}   create a section at path
//	DELETE /config/{path}   unset path
//
// Paths use the store's separator. Bodies are YAML (JSON is accepted too).
// Responses are JSON for JSONC stores and YAML otherwise. With cfg.ReadOnly
// only the GET routes are registered.
func NewHandler(st *store.Store, cfg Config) http.Handler {
	h := &handler{
		store:       st,
		codec:       yamlparser.NewParser(),
		contentType: contentTypeYAML,
	}

	if st.Config().Format == store.FormatJSONC {
		h.codec = yamlparser.NewParser(yamlparser.WithJSONOutput())
		h.contentType = contentTypeJSON
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /config", h.get)
	mux.HandleFunc("GET /config/{path...}", h.get)

	if !cfg.ReadOnly {
		mux.HandleFunc("PUT /config/{path...}", h.set)
		mux.HandleFunc("POST /config/{path...}", h.create)
		mux.HandleFunc("DELETE /config/{path...}", h.unset)
	}

	return mux
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	var (
		body []byte
		kind config.Kind
	)

	err := h.store.View(func(cfg *config.Configuration) error {
		var value any

		value, kind = cfg.Lookup(path)
		if kind == config.KindAbsent {
			return nil
		}

		if section, ok := value.(*config.Section); ok {
			value = section.Raw()
		}

		var err error

		body, err = h.codec.EmitValue(value)

		return err
	})
	if err != nil {
		h.fail(w, r, err)

		return
	}

	if kind == config.KindAbsent {
		http.Error(w, fmt.Sprintf("%q not found", path), http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", h.contentType)
	w.Header().Set(KindHeader, kind.String())
	_, _ = w.Write(body)
}

func (h *handler) set(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	value, err := h.codec.ParseValue(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	path := r.PathValue("path")

	err = h.store.Update(func(cfg *config.Configuration) error {
		newKind := config.KindValue
		if value == nil {
			newKind = config.KindNull
		}

		slog.Debug("setting config value",
			slog.String("path", path),
			slog.Any("previous", loggedValue(cfg.Lookup(path))),
			slog.Any("value", loggedValue(value, newKind)),
		)

		return cfg.Set(path, value)
	})
	if err != nil {
		h.fail(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	err := h.store.Update(func(cfg *config.Configuration) error {
		previous := loggedValue(cfg.Lookup(path))

		section, err := cfg.CreateSection(path)
		if err != nil {
			return err
		}

		slog.Debug("creating config section", slog.Any("section", section), slog.Any("previous", previous))

		return nil
	})
	if err != nil {
		h.fail(w, r, err)

		return
	}

	w.Header().Set(KindHeader, config.KindSection.String())
	w.WriteHeader(http.StatusCreated)
}

func (h *handler) unset(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	err := h.store.Update(func(cfg *config.Configuration) error {
		slog.Debug("unsetting config value", slog.String("path", path), slog.Any("previous", loggedValue(cfg.Lookup(path))))

		return cfg.Unset(path)
	})
	if err != nil {
		h.fail(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// loggedValue maps a lookup result to an attribute value. Nulls become
// config.Null so the logger renders them as null rather than <nil>.
func loggedValue(value any, kind config.Kind) any {
	switch kind {
	case config.KindNull:
		return config.Null
	case config.KindAbsent:
		return kind.String()
	default:
		return value
	}
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, config.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &tooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	default:
		slog.Error("config request failed", "method", r.Method, "path", r.PathValue("path"), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
