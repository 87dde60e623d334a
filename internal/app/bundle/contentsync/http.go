package contentsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
)

// DefaultTimeout bounds one resync call so a slow purchase cannot stall the
// whole batch.
const DefaultTimeout = 10 * time.Second

// HTTPContentSync asks the content-delivery service to rebuild one purchase's
// granted content from the bundle's current composition.
type HTTPContentSync struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPContentSync(baseURL string, client *http.Client) *HTTPContentSync {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPContentSync{BaseURL: baseURL, Client: client}
}

type resyncRequest struct {
	PurchaseID string `json:"purchase_id"`
	BundleID   string `json:"bundle_id"`
}

// Resync reports any non-2xx answer as an error so the worker can count and
// log the purchase, then move on.
func (s *HTTPContentSync) Resync(ctx context.Context, purchase *dto.PurchaseDTO) error {
	body, err := json.Marshal(resyncRequest{
		PurchaseID: purchase.PurchaseID,
		BundleID:   purchase.BundleID,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/internal/purchases/resync", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("resync purchase %s: %w", purchase.PurchaseID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("resync purchase %s: content service answered %d", purchase.PurchaseID, resp.StatusCode)
	}
	return nil
}
