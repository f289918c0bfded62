// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path"

	"github.com/skip2/go-qrcode"

	"autosite/internal/engine"
	"autosite/internal/models"
)

// FileQRCode is the archived PNG that encodes the site URL.
const FileQRCode = "qr.png"

// ObjectStore is the subset of storage.Client the archive uses.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	DeletePrefix(ctx context.Context, prefix string) error
	FileURL(key string) string
}

// Archive backs up each deployed bundle under sites/<id>/.
type Archive struct {
	store ObjectStore
}

// NewArchive returns an archive writing to store.
func NewArchive(store ObjectStore) *Archive {
	return &Archive{store: store}
}

// Prefix is the object key prefix holding a site's backup.
func Prefix(siteID string) string {
	return "sites/" + siteID + "/"
}

// Save uploads the three artifact files and a QR code of the site URL.
// It returns the public URL of the archived index.html.
func (a *Archive) Save(ctx context.Context, site *models.Site, artifacts engine.Artifacts) (string, error) {
	prefix := Prefix(site.ID)

	for name, body := range artifacts.Files() {
		if err := a.store.Upload(ctx, prefix+name, contentType(name), []byte(body)); err != nil {
			return "", fmt.Errorf("archive %s: %w", name, err)
		}
	}

	png, err := qrcode.Encode(site.URL, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("archive qr code: %w", err)
	}
	if err := a.store.Upload(ctx, prefix+FileQRCode, "image/png", png); err != nil {
		return "", fmt.Errorf("archive %s: %w", FileQRCode, err)
	}

	slog.Info("site archived", "id", site.ID, "prefix", prefix)
	return a.store.FileURL(prefix + engine.FileMarkup), nil
}

// Remove deletes a site's backup.
func (a *Archive) Remove(ctx context.Context, siteID string) error {
	if err := a.store.DeletePrefix(ctx, Prefix(siteID)); err != nil {
		return fmt.Errorf("archive remove %s: %w", siteID, err)
	}
	return nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
