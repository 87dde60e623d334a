package get_bundle

import (
	"context"

	contracts "github.com/murkotick/bundle-composition-service/internal/app/bundle/contracts"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
)

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

func (h *Handler) Execute(ctx context.Context, bundleID string) (*dto.BundleDTO, error) {
	return h.readModel.GetBundle(ctx, bundleID)
}
