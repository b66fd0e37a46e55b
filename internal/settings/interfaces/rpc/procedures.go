package rpc

import (
	"context"

	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/internal/settings/application"
	"github.com/lumacart/storefront/internal/settings/domain"
)

type idInput struct {
	ID uint `json:"id" validate:"required"`
}

type emptyInput struct{}

type listSettingsInput struct {
	Category string `json:"category"`
}

type getSettingInput struct {
	Key string `json:"key" validate:"required"`
}

type upsertSettingInput struct {
	Key         string `json:"key" validate:"required"`
	Value       string `json:"value"`
	Type        string `json:"type" validate:"omitempty,oneof=string number boolean json"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type createPixelInput struct {
	Name     string           `json:"name" validate:"required"`
	Platform string           `json:"platform" validate:"required,oneof=facebook google_analytics google_tag_manager tiktok custom"`
	PixelID  string           `json:"pixelId" validate:"required"`
	IsActive *bool            `json:"isActive"`
	Events   domain.EventList `json:"events"`
}

type updatePixelInput struct {
	ID       uint             `json:"id" validate:"required"`
	Name     *string          `json:"name"`
	Platform *string          `json:"platform" validate:"omitempty,oneof=facebook google_analytics google_tag_manager tiktok custom"`
	PixelID  *string          `json:"pixelId"`
	IsActive *bool            `json:"isActive"`
	Events   domain.EventList `json:"events"`
}

type createScriptInput struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required,oneof=header footer"`
	Content  string `json:"content" validate:"required"`
	IsActive *bool  `json:"isActive"`
}

type updateScriptInput struct {
	ID       uint    `json:"id" validate:"required"`
	Name     *string `json:"name"`
	Position *string `json:"position" validate:"omitempty,oneof=header footer"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"isActive"`
}

type saveCardInput struct {
	CardBrand      string `json:"cardBrand" validate:"required"`
	LastFourDigits string `json:"lastFourDigits" validate:"required,len=4,numeric"`
	HolderName     string `json:"holderName" validate:"required"`
	ExpiryMonth    int    `json:"expiryMonth" validate:"required,min=1,max=12"`
	ExpiryYear     int    `json:"expiryYear" validate:"required,min=2020"`
	TokenizedID    string `json:"tokenizedId"`
	IsDefault      bool   `json:"isDefault"`
}

// Register mounts the storeSettings, trackingPixels, customScripts and
// paymentCards namespaces.
func Register(r *rpc.Router, svc *application.Service) {
	r.Namespace("storeSettings",
		rpc.Query("list", rpc.Admin, func(ctx context.Context, call *rpc.Call, in listSettingsInput) ([]domain.StoreSetting, error) {
			return svc.ListSettings(ctx, in.Category), nil
		}),
		rpc.Query("get", rpc.Admin, func(ctx context.Context, call *rpc.Call, in getSettingInput) (*domain.StoreSetting, error) {
			return svc.GetSetting(ctx, in.Key)
		}),
		rpc.Mutation("upsert", rpc.Admin, func(ctx context.Context, call *rpc.Call, in upsertSettingInput) (bool, error) {
			if err := svc.UpsertSetting(ctx, domain.UpsertSetting{
				Key:         in.Key,
				Value:       in.Value,
				Type:        domain.SettingType(in.Type),
				Category:    in.Category,
				Description: in.Description,
			}); err != nil {
				return false, err
			}
			return true, nil
		}),
	)

	r.Namespace("trackingPixels",
		rpc.Query("list", rpc.Admin, func(ctx context.Context, call *rpc.Call, _ emptyInput) ([]domain.TrackingPixel, error) {
			return svc.ListPixels(ctx), nil
		}),
		rpc.Mutation("create", rpc.Admin, func(ctx context.Context, call *rpc.Call, in createPixelInput) (*domain.TrackingPixel, error) {
			pixel := &domain.TrackingPixel{
				Name:     in.Name,
				Platform: domain.PixelPlatform(in.Platform),
				PixelID:  in.PixelID,
				IsActive: in.IsActive == nil || *in.IsActive,
				Events:   in.Events,
			}
			return svc.CreatePixel(ctx, pixel)
		}),
		rpc.Mutation("update", rpc.Admin, func(ctx context.Context, call *rpc.Call, in updatePixelInput) (bool, error) {
			update := domain.PixelUpdate{
				Name:     in.Name,
				PixelID:  in.PixelID,
				IsActive: in.IsActive,
				Events:   in.Events,
			}
			if in.Platform != nil {
				p := domain.PixelPlatform(*in.Platform)
				update.Platform = &p
			}
			if err := svc.UpdatePixel(ctx, in.ID, update); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("delete", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.DeletePixel(ctx, in.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)

	r.Namespace("customScripts",
		rpc.Query("list", rpc.Admin, func(ctx context.Context, call *rpc.Call, _ emptyInput) ([]domain.CustomScript, error) {
			return svc.ListScripts(ctx), nil
		}),
		rpc.Mutation("create", rpc.Admin, func(ctx context.Context, call *rpc.Call, in createScriptInput) (*domain.CustomScript, error) {
			script := &domain.CustomScript{
				Name:     in.Name,
				Position: domain.ScriptPosition(in.Position),
				Content:  in.Content,
				IsActive: in.IsActive == nil || *in.IsActive,
			}
			return svc.CreateScript(ctx, script)
		}),
		rpc.Mutation("update", rpc.Admin, func(ctx context.Context, call *rpc.Call, in updateScriptInput) (bool, error) {
			update := domain.ScriptUpdate{
				Name:     in.Name,
				Content:  in.Content,
				IsActive: in.IsActive,
			}
			if in.Position != nil {
				p := domain.ScriptPosition(*in.Position)
				update.Position = &p
			}
			if err := svc.UpdateScript(ctx, in.ID, update); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("delete", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.DeleteScript(ctx, in.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)

	r.Namespace("paymentCards",
		rpc.Query("list", rpc.Protected, func(ctx context.Context, call *rpc.Call, _ emptyInput) ([]domain.PaymentCard, error) {
			return svc.ListCards(ctx, call.Identity.ID)
		}),
		rpc.Mutation("save", rpc.Protected, func(ctx context.Context, call *rpc.Call, in saveCardInput) (*domain.PaymentCard, error) {
			card := &domain.PaymentCard{
				UserID:         call.Identity.ID,
				CardBrand:      in.CardBrand,
				LastFourDigits: in.LastFourDigits,
				HolderName:     in.HolderName,
				ExpiryMonth:    in.ExpiryMonth,
				ExpiryYear:     in.ExpiryYear,
				TokenizedID:    in.TokenizedID,
				IsDefault:      in.IsDefault,
			}
			return svc.SaveCard(ctx, card)
		}),
		rpc.Mutation("delete", rpc.Protected, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.DeleteCard(ctx, in.ID, call.Identity.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("setDefault", rpc.Protected, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.SetDefaultCard(ctx, in.ID, call.Identity.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)
}
