// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"websmith/internal/assemble"
	"websmith/internal/export"
	"websmith/internal/models"
)

// ExportZip handles GET /export/zip: the downloadable archive with the
// merged document, the raw sources, and a readme.
func (a *API) ExportZip(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	st := a.workspaces.Snapshot(sess.ClientID)
	if st.Empty() {
		writeError(w, http.StatusNotFound, "nothing to export")
		return
	}

	data, err := export.Archive(st)
	if err != nil {
		slog.Error("export archive failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.ArchiveName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// ExportSource handles GET /export/source?field=: one raw buffer as plain
// text, or the merged document for field=full.
func (a *API) ExportSource(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)
	st := a.workspaces.Snapshot(sess.ClientID)

	var body string
	switch field := r.URL.Query().Get("field"); field {
	case string(models.FieldHTML):
		body = st.HTML
	case string(models.FieldCSS):
		body = st.CSS
	case string(models.FieldJS):
		body = st.JS
	case "full", "":
		body = assemble.Document(st.HTML, st.CSS, st.JS)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown field %q", field))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(body))
}

// ExportDocument handles GET /export/document: the merged document as a
// standalone page. The sandbox policy applies here too; the content is
// user-supplied and must not run with this origin's authority.
func (a *API) ExportDocument(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	st := a.workspaces.Snapshot(sess.ClientID)
	if st.Empty() {
		writeError(w, http.StatusNotFound, "nothing to export")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", "sandbox allow-scripts")
	w.Write([]byte(assemble.Document(st.HTML, st.CSS, st.JS)))
}

// ExportQR handles GET /export/qr: a QR code PNG pointing at the client's
// current preview, for opening the result on a phone.
func (a *API) ExportQR(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	token, ok := a.previews.CurrentToken(sess.ClientID)
	if !ok {
		writeError(w, http.StatusNotFound, "no preview available")
		return
	}

	png, err := qrcode.Encode(a.publicURL+"/preview/"+token, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr encode failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not build QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// Publish handles POST /export/publish: uploading the archive to the
// publication bucket and returning its public URL. Answers 503 when no
// object storage is configured.
func (a *API) Publish(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "publishing is not configured")
		return
	}

	st := a.workspaces.Snapshot(sess.ClientID)
	if st.Empty() {
		writeError(w, http.StatusNotFound, "nothing to publish")
		return
	}

	data, err := export.Archive(st)
	if err != nil {
		slog.Error("export archive failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not build archive")
		return
	}

	key := fmt.Sprintf("sites/%s/%d/%s", sess.ClientID, time.Now().Unix(), export.ArchiveName)
	if err := a.storageClient.Upload(r.Context(), key, "application/zip", bytes.NewReader(data), int64(len(data))); err != nil {
		slog.Error("publish upload failed", "client_id", sess.ClientID, "error", err)
		writeError(w, http.StatusBadGateway, "upload failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url": a.storageClient.FileURL(key),
		"key": key,
	})
}

type unpublishRequest struct {
	Key string `json:"key"`
}

// ownsPublication reports whether key addresses an object published by
// clientID. Publish keys always live under sites/<client>/.
func ownsPublication(clientID uuid.UUID, key string) bool {
	return strings.HasPrefix(key, "sites/"+clientID.String()+"/")
}

// Unpublish handles POST /export/unpublish: removing a previously
// published archive from the publication bucket, identified by the key
// the publish response returned.
func (a *API) Unpublish(w http.ResponseWriter, r *http.Request) {
	sess := a.sess(r)

	if a.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "publishing is not configured")
		return
	}

	var req unpublishRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !ownsPublication(sess.ClientID, req.Key) {
		writeError(w, http.StatusBadRequest, "key does not reference one of your publications")
		return
	}

	if err := a.storageClient.Delete(r.Context(), req.Key); err != nil {
		slog.Error("unpublish delete failed", "client_id", sess.ClientID, "key", req.Key, "error", err)
		writeError(w, http.StatusBadGateway, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
