package wizard

import (
	"strconv"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// BuildRequest derives the order body from d. Quantities are sent as strings.
func BuildRequest(d *OrderDraft) model.OrderRequest {
	req := model.OrderRequest{ProjectID: d.ProjectID, Flow: d.Flow}
	entries := d.Materials.Entries()

	if d.Flow == model.FlowMaterial {
		body := &model.MaterialOrderRequest{Materials: make([]model.MaterialOrderLine, 0, len(entries))}
		for _, e := range entries {
			body.Materials = append(body.Materials, model.MaterialOrderLine{
				SupplierName: e.Item.SupplierName,
				MaterialName: e.Item.MaterialName,
				MaterialQty:  strconv.Itoa(e.Quantity),
				DeliveryDate: d.DeliveryDate,
			})
		}
		req.Material = body
		return req
	}

	body := &model.CombinedOrderRequest{
		StartingLocation: d.StartingLocation,
		Materials:        make([]model.OrderedMaterial, 0, len(entries)),
		DeliveryDate:     d.DeliveryDate,
	}
	if supplier, ok := d.Materials.Supplier(); ok {
		body.SupplierName = supplier
	}
	for _, e := range entries {
		body.Materials = append(body.Materials, model.OrderedMaterial{
			MaterialName: e.Item.MaterialName,
			MaterialQty:  strconv.Itoa(e.Quantity),
		})
	}
	if fleet, ok := d.Fleet.Selected(); ok {
		body.DriverName = fleet.Item.Name
		body.FleetPrice = fleet.EffectivePrice()
	}
	req.Combined = body
	return req
}
