package fieldcheck

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type checkResponse struct {
	Data Result `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
// It fails when a registered field does not compile.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	checker, err := NewChecker(opts.Fields)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				if logger != nil {
					logger.Warn("fieldcheck guard rejected request", slog.String("path", r.URL.Path), slog.Any("error", err))
				}
				writeGuardError(w, err)
				return
			}
		}

		query := r.URL.Query()
		result, err := checker.Check(query.Get(opts.KindParam), query.Get(opts.FieldParam), query.Get(opts.ValueParam))
		if err != nil {
			if logger != nil {
				logger.Warn("fieldcheck bad request", slog.Any("error", err))
			}
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if logger != nil {
			logger.Debug("fieldcheck",
				slog.String("kind", string(result.Kind)),
				slog.String("field", result.Field),
				slog.Bool("valid", result.Valid),
			)
		}
		writeJSON(w, r, http.StatusOK, checkResponse{Data: result})
	}), nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
