package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pgraph-io/pgraph"
	"github.com/pgraph-io/pgraph/internal/logger"
	"github.com/pgraph-io/pgraph/internal/snapstore"
)

type server struct {
	db             *pgraph.Db
	store          snapstore.Store
	snapshotPrefix string
	log            *logger.Logger
}

func (s *server) handleDb(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":          s.db.Name,
		"serverVersion": s.db.ServerVersion,
		"schemas":       names(s.db.Schemas.All()),
		"systemSchemas": names(s.db.SystemSchemas.All()),
	})
}

func (s *server) handleSchemas(w http.ResponseWriter, r *http.Request) {
	out := make([]map[string]any, 0, s.db.Schemas.Len())
	for _, sc := range s.db.Schemas.All() {
		out = append(out, renderSchema(sc))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleSchema(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.db.Schemas.MaybeGet(chi.URLParam(r, "schema"))
	if !ok {
		writeError(w, http.StatusNotFound, "schema not found")
		return
	}
	writeJSON(w, http.StatusOK, renderSchema(sc))
}

func (s *server) handleTable(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.db.Schemas.MaybeGet(chi.URLParam(r, "schema"))
	if !ok {
		writeError(w, http.StatusNotFound, "schema not found")
		return
	}
	table, ok := sc.Tables.MaybeGet(chi.URLParam(r, "table"))
	if !ok {
		writeError(w, http.StatusNotFound, "table not found")
		return
	}
	writeJSON(w, http.StatusOK, renderTable(table))
}

func (s *server) handleLookup(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}
	obj, err := s.db.Get(path)
	if err != nil {
		if errors.Is(err, pgraph.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, renderObject(obj))
}

func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "snapshot store not configured")
		return
	}
	data, err := s.db.Serialize()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	key := fmt.Sprintf("%s%s-%s.json", s.snapshotPrefix, s.db.Name, time.Now().UTC().Format("20060102T150405Z"))
	if err := s.store.Put(r.Context(), key, data); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.log.Info().Str("key", key).Int("bytes", len(data)).Msg("snapshot stored")
	writeJSON(w, http.StatusCreated, map[string]any{"key": key, "bytes": len(data)})
}

func renderSchema(sc *pgraph.Schema) map[string]any {
	return map[string]any{
		"name":              sc.Name,
		"tables":            names(sc.Tables.All()),
		"views":             names(sc.Views.All()),
		"materializedViews": names(sc.MaterializedViews.All()),
		"sequences":         names(sc.Sequences.All()),
	}
}

func renderTable(t *pgraph.Entity) map[string]any {
	cols := make([]map[string]any, 0, t.Columns.Len())
	for _, c := range t.Columns.All() {
		cols = append(cols, map[string]any{
			"name":    c.Name,
			"type":    c.Type.SQLName(),
			"notNull": c.NotNull,
		})
	}

	constraints := make([]map[string]any, 0, t.Constraints.Len())
	for _, c := range t.Constraints.All() {
		entry := map[string]any{"name": c.Name, "kind": string(c.Kind)}
		if ref := c.ReferencedTable(); ref != nil {
			entry["referencedTable"] = ref.ObjectFullName()
		}
		constraints = append(constraints, entry)
	}

	relations := []map[string]any{}
	for _, r := range t.M2O() {
		relations = append(relations, renderRelation(r))
	}
	for _, r := range t.O2M() {
		relations = append(relations, renderRelation(r))
	}
	for _, r := range t.M2M() {
		relations = append(relations, renderRelation(r))
	}

	return map[string]any{
		"name":        t.ObjectFullName(),
		"columns":     cols,
		"constraints": constraints,
		"relations":   relations,
	}
}

func renderRelation(r *pgraph.Relation) map[string]any {
	entry := map[string]any{
		"kind":   string(r.Kind),
		"name":   r.Name,
		"target": r.TargetTable.ObjectFullName(),
	}
	if r.JoinTable != nil {
		entry["joinTable"] = r.JoinTable.ObjectFullName()
	}
	return entry
}

func renderObject(obj pgraph.Object) map[string]any {
	entry := map[string]any{"fullName": obj.ObjectFullName()}
	switch o := obj.(type) {
	case *pgraph.Schema:
		entry["kind"] = "schema"
	case *pgraph.Entity:
		entry["kind"] = string(o.Kind)
	case *pgraph.Type:
		entry["kind"] = string(o.Kind)
	case *pgraph.Column:
		entry["kind"] = "column"
		entry["type"] = o.Type.SQLName()
		entry["notNull"] = o.NotNull
	case *pgraph.Function:
		entry["kind"] = string(o.Kind)
	}
	return entry
}

func names[T pgraph.Object](objs []T) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.ObjectName()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
