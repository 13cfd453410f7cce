package handler

import (
	"github.com/kusina/canteen-api/internal/core/domain"
	"github.com/kusina/canteen-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toSessionResponse(token string, s *ports.Session) sessionResponse {
	return sessionResponse{
		Token: token,
		User:  toUserResponse(s.User),
		Role:  string(s.Role),
	}
}

func toMenuItemResponse(item *domain.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price.String(),
		Description: item.Description,
		ImageURL:    item.ImageURL,
		CreatedAt:   item.CreatedAt,
	}
}

func toMenuItemResponses(items []*domain.MenuItem) []menuItemResponse {
	out := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toMenuItemResponse(item))
	}
	return out
}

func toOrderResponse(v ports.OrderView) orderResponse {
	return orderResponse{
		ID:         v.ID,
		ItemName:   v.ItemName,
		ImageURL:   v.ImageURL,
		Quantity:   v.Quantity,
		Total:      v.Total.String(),
		Status:     string(v.Status),
		CreatedAt:  v.CreatedAt,
		OwnerEmail: v.OwnerEmail,
	}
}

func toOrderResponses(views []ports.OrderView) []orderResponse {
	out := make([]orderResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toOrderResponse(v))
	}
	return out
}
