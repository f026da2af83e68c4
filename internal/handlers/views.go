package handlers

import (
	"voidwebsite/internal/format"
	"voidwebsite/internal/models"
)

// orderView adds the display fields the admin list renders.
type orderView struct {
	models.Order
	StatusLabel    string `json:"statusLabel"`
	StatusColor    string `json:"statusColor"`
	TotalFormatted string `json:"totalFormatted"`
}

func newOrderView(o models.Order) orderView {
	return orderView{
		Order:          o,
		StatusLabel:    format.StatusLabel(o.Status),
		StatusColor:    format.StatusColor(o.Status),
		TotalFormatted: format.Currency(o.Total),
	}
}

func newOrderViews(orders []models.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderView(o))
	}
	return out
}

type orderSetView struct {
	models.OrderSet
	Orders []orderView `json:"orders"`
}
