package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-api/internal/domain/product"
	"github.com/xenking/storefront-api/pkg/pagination"
)

// createProduct handles POST /api/v1/products.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r)

	p, err := decodeCreateProduct(jx.Decode(r.Body, 4096))
	if err != nil {
		writeBadBody(w)
		return
	}

	id, err := h.catalog.CreateProduct(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeID(w, id)
}

// listProducts handles GET /api/v1/products.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset, err := pagination.ParamsFromQuery(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := product.Filter{
		Name: q.Get("name"),
		Size: q.Get("size"),
	}

	result, err := h.catalog.ListProducts(r.Context(), filter, limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("data")
	e.ArrStart()
	for _, p := range result.Products {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(p.ID)
		e.FieldStart("name")
		e.Str(p.Name)
		e.FieldStart("price")
		e.Num(jx.Num(p.Price.String()))
		e.ObjEnd()
	}
	e.ArrEnd()
	encodePage(&e, result.Page)
	e.ObjEnd()

	writeJSON(w, http.StatusOK, &e)
}

func decodeCreateProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "name":
			v, err := d.Str()
			if err != nil {
				return err
			}
			p.Name = v
			return nil
		case "price":
			n, err := d.Num()
			if err != nil {
				return err
			}
			price, err := decimal.NewFromString(n.String())
			if err != nil {
				return err
			}
			p.Price = price
			return nil
		case "sizes":
			return d.Arr(func(d *jx.Decoder) error {
				var s product.Size
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					switch key {
					case "size":
						v, err := d.Str()
						if err != nil {
							return err
						}
						s.Name = v
						return nil
					case "quantity":
						v, err := d.Int()
						if err != nil {
							return err
						}
						s.Quantity = v
						return nil
					default:
						return d.Skip()
					}
				}); err != nil {
					return err
				}
				p.Sizes = append(p.Sizes, s)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	return p, err
}
