package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"

	"gym-console/backend/internal/config"
	"gym-console/backend/internal/httpjson"
)

// Uploads issues signed PUT URLs so admins upload gym images straight
// to the bucket instead of proxying bytes through the API.
type Uploads struct {
	cfg config.FirebaseConfig
	iam *credentials.IamCredentialsClient
}

func NewUploads(cfg config.FirebaseConfig) *Uploads {
	// IAM client is optional; only needed for signed URLs.
	iamClient, _ := credentials.NewIamCredentialsClient(context.Background())
	return &Uploads{cfg: cfg, iam: iamClient}
}

type signedURLReq struct {
	FileName       string `json:"fileName"`
	ContentType    string `json:"contentType,omitempty"`
	ExpiresSeconds int64  `json:"expiresSeconds,omitempty"` // default 900
}

type signedURLResp struct {
	URL        string `json:"url"`
	Method     string `json:"method"`
	ObjectPath string `json:"objectPath"`
	ExpiresAt  int64  `json:"expiresAt"`
}

// CreateGymImageURL signs an upload URL for one gym image. The object
// path is derived server-side so a caller cannot write outside their
// gym's prefix.
func (h *Uploads) CreateGymImageURL(w http.ResponseWriter, r *http.Request, gymID string) {
	var req signedURLReq
	if err := httpjson.Read(r, &req); err != nil || req.FileName == "" {
		httpjson.Error(w, http.StatusBadRequest, "fileName is required")
		return
	}

	name := sanitizeFileName(req.FileName)
	if name == "" {
		httpjson.Error(w, http.StatusBadRequest, "fileName is invalid")
		return
	}
	objectPath := fmt.Sprintf("gyms/%s/images/%d-%s", gymID, time.Now().UnixMilli(), name)

	url, exp, err := h.signedURL(r.Context(), objectPath, req.ContentType, req.ExpiresSeconds)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, signedURLResp{
		URL:        url,
		Method:     "PUT",
		ObjectPath: objectPath,
		ExpiresAt:  exp.Unix(),
	})
}

func (h *Uploads) signedURL(ctx context.Context, objectPath, contentType string, expiresSeconds int64) (string, time.Time, error) {
	if h.cfg.StorageBucket == "" {
		return "", time.Time{}, fmt.Errorf("FIREBASE_STORAGE_BUCKET is not set")
	}
	if h.cfg.SignedURLServiceAccountEmail == "" {
		return "", time.Time{}, fmt.Errorf("SIGNED_URL_SERVICE_ACCOUNT_EMAIL is not set")
	}
	if h.iam == nil {
		return "", time.Time{}, fmt.Errorf("IAM credentials client not available")
	}
	if expiresSeconds <= 0 || expiresSeconds > 3600 {
		expiresSeconds = 900
	}
	exp := time.Now().Add(time.Duration(expiresSeconds) * time.Second)

	// V4 signed URL for PUT (upload).
	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        exp,
		ContentType:    contentType,
		GoogleAccessID: h.cfg.SignedURLServiceAccountEmail,
		SignBytes: func(b []byte) ([]byte, error) {
			name := fmt.Sprintf("projects/-/serviceAccounts/%s", h.cfg.SignedURLServiceAccountEmail)
			resp, err := h.iam.SignBlob(ctx, &credentialspb.SignBlobRequest{
				Name:    name,
				Payload: b,
			})
			if err != nil {
				return nil, err
			}
			return resp.SignedBlob, nil
		},
	}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}

	url, err := storage.SignedURL(h.cfg.StorageBucket, objectPath, opts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign url (check service account + permissions): %v", err)
	}
	return url, exp, nil
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.' || c == '-' || c == '_':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
