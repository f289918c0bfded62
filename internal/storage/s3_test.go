// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import "testing"

func TestNewDisabledWithoutConfig(t *testing.T) {
	tests := []struct {
		name                             string
		endpoint, access, secret, bucket string
	}{
		{name: "no endpoint", access: "a", secret: "s", bucket: "b"},
		{name: "no access key", endpoint: "http://minio:9000", secret: "s", bucket: "b"},
		{name: "no secret", endpoint: "http://minio:9000", access: "a", bucket: "b"},
		{name: "no bucket", endpoint: "http://minio:9000", access: "a", secret: "s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.endpoint, "us-east-1", tt.access, tt.secret, tt.bucket, "")
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if c != nil {
				t.Error("expected nil client when storage is not configured")
			}
		})
	}
}

func TestNewRequiresRegion(t *testing.T) {
	if _, err := New("http://minio:9000", "", "a", "s", "b", ""); err == nil {
		t.Error("expected error for empty region")
	}
}

func TestFileURL(t *testing.T) {
	c, err := New("http://minio:9000/", "us-east-1", "a", "s", "backups", "")
	if err != nil || c == nil {
		t.Fatalf("New: (%v, %v)", c, err)
	}
	if got, want := c.FileURL("sites/x/index.html"), "http://minio:9000/backups/sites/x/index.html"; got != want {
		t.Errorf("path-style: got %q, want %q", got, want)
	}
	if c.Bucket() != "backups" {
		t.Errorf("Bucket: got %q", c.Bucket())
	}

	cdn, _ := New("http://minio:9000", "us-east-1", "a", "s", "backups", "https://cdn.example.com/")
	if got, want := cdn.FileURL("sites/x/qr.png"), "https://cdn.example.com/sites/x/qr.png"; got != want {
		t.Errorf("public URL: got %q, want %q", got, want)
	}
}
