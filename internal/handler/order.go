package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/xenking/storefront-api/internal/domain/order"
	"github.com/xenking/storefront-api/pkg/pagination"
)

// createOrder handles POST /api/v1/orders.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r)

	userID, items, err := decodeCreateOrder(jx.Decode(r.Body, 4096))
	if err != nil {
		writeBadBody(w)
		return
	}

	id, err := h.orders.CreateOrder(r.Context(), userID, items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeID(w, id)
}

// listUserOrders handles GET /api/v1/orders/{userID}.
func (h *Handler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit, offset, err := pagination.ParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.orders.ListUserOrders(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("data")
	e.ArrStart()
	for _, o := range result.Orders {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(o.ID)
		e.FieldStart("items")
		e.ArrStart()
		for _, item := range o.Items {
			e.ObjStart()
			e.FieldStart("productDetails")
			e.ObjStart()
			e.FieldStart("id")
			e.Str(item.Product.ID)
			e.FieldStart("name")
			e.Str(item.Product.Name)
			e.ObjEnd()
			e.FieldStart("qty")
			e.Int(item.Qty)
			e.ObjEnd()
		}
		e.ArrEnd()
		e.FieldStart("total")
		e.Num(jx.Num(o.Total.String()))
		e.ObjEnd()
	}
	e.ArrEnd()
	encodePage(&e, result.Page)
	e.ObjEnd()

	writeJSON(w, http.StatusOK, &e)
}

func decodeCreateOrder(d *jx.Decoder) (userID string, items []order.Item, err error) {
	err = d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "userId":
			v, err := d.Str()
			if err != nil {
				return err
			}
			userID = v
			return nil
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				var item order.Item
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					switch key {
					case "productId":
						v, err := d.Str()
						if err != nil {
							return err
						}
						item.ProductID = v
						return nil
					case "qty":
						v, err := d.Int()
						if err != nil {
							return err
						}
						item.Qty = v
						return nil
					default:
						return d.Skip()
					}
				}); err != nil {
					return err
				}
				items = append(items, item)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	return userID, items, err
}
