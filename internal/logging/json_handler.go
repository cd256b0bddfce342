package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"moviedb/internal/services"
)

const jsonTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// jsonHandler writes one JSON object per record. Records logged with a
// lookup context carry its request fields, and an "error" attr is paired
// with its error_kind.
type jsonHandler struct {
	next slog.Handler
	keys map[string]struct{}
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &jsonHandler{next: slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	})}
}

func replaceJSONAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(jsonTimestampLayout))
		}
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	case slog.MessageKey:
		if strings.TrimSpace(attr.Value.String()) == "" {
			attr.Value = slog.StringValue("(no message)")
		}
	}
	return attr
}

func (h *jsonHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *jsonHandler) Handle(ctx context.Context, record slog.Record) error {
	if extra := requestAttrs(ctx, record, h.bound); len(extra) > 0 {
		record = record.Clone()
		record.AddAttrs(extra...)
	}
	return h.next.Handle(ctx, record)
}

func (h *jsonHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	keys := make(map[string]struct{}, len(h.keys)+len(attrs))
	for key := range h.keys {
		keys[key] = struct{}{}
	}
	for _, attr := range attrs {
		keys[attr.Key] = struct{}{}
	}
	return &jsonHandler{next: h.next.WithAttrs(attrs), keys: keys}
}

func (h *jsonHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &jsonHandler{next: h.next.WithGroup(name), keys: h.keys}
}

func (h *jsonHandler) bound(key string) bool {
	_, ok := h.keys[key]
	return ok
}

// requestAttrs returns the fields a handler adds to record: request fields
// from ctx not already bound to the logger, and the error kind of an
// "error" attr when the record lacks one.
func requestAttrs(ctx context.Context, record slog.Record, bound func(string) bool) []slog.Attr {
	var (
		extra   []slog.Attr
		errKind string
		hasKind bool
		present = map[string]bool{}
	)
	record.Attrs(func(attr slog.Attr) bool {
		present[attr.Key] = true
		switch attr.Key {
		case FieldErrorKind:
			hasKind = true
		case "error":
			if err, ok := attr.Value.Resolve().Any().(error); ok {
				errKind = services.Kind(err)
			}
		}
		return true
	})
	for _, field := range ContextFields(ctx) {
		if !present[field.Key] && !bound(field.Key) {
			extra = append(extra, field)
		}
	}
	if errKind != "" && !hasKind && !bound(FieldErrorKind) {
		extra = append(extra, slog.String(FieldErrorKind, errKind))
	}
	return extra
}

