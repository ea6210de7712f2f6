// Package batch replays a batch description against the ledger services and
// records the outcome of every step. A failing step never stops the batch.
package batch

import (
	"context"

	customerservice "hotelledger/internal/customers/service"
	hotelservice "hotelledger/internal/hotels/service"
	reservationservice "hotelledger/internal/reservations/service"
	apperrors "hotelledger/pkg/errors"
	"hotelledger/pkg/logger"
	"hotelledger/pkg/model"
)

const modifiedSuffix = " (modified)"

type Driver struct {
	customers    customerservice.CustomerService
	hotels       hotelservice.HotelService
	reservations reservationservice.ReservationService
	log          *logger.Logger
}

func NewDriver(
	customers customerservice.CustomerService,
	hotels hotelservice.HotelService,
	reservations reservationservice.ReservationService,
	log *logger.Logger,
) *Driver {
	return &Driver{
		customers:    customers,
		hotels:       hotels,
		reservations: reservations,
		log:          log.Component("batch"),
	}
}

// Run executes the phases in fixed order: customers, hotels, reservations,
// then deletes of every input customer and hotel. Ids are visited in sorted
// order within each phase.
func (d *Driver) Run(ctx context.Context, in *Input) *Report {
	report := &Report{}
	d.runCustomers(ctx, in.Customers, report)
	d.runHotels(ctx, in.Hotels, report)
	d.runReservations(ctx, in.Reservations, report)
	d.runDeletes(ctx, in, report)

	d.log.Info("Batch finished",
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
	)
	return report
}

func (d *Driver) runCustomers(ctx context.Context, customers map[string]CustomerInput, report *Report) {
	for _, id := range model.SortedIDs(customers) {
		info := customers[id]

		err := d.customers.Create(ctx, &model.Customer{
			ID:             id,
			CustomerRecord: model.CustomerRecord{Name: info.Name, Email: info.Email},
		})
		if !d.record(report, PhaseCustomers, "Create customer "+id, "Created customer "+id, err) {
			continue
		}

		_, err = d.customers.GetByID(ctx, id)
		d.record(report, PhaseCustomers, "Display customer "+id, "Displayed customer "+id, err)

		err = d.customers.Update(ctx, id, &model.CustomerUpdate{Name: info.Name + modifiedSuffix})
		d.record(report, PhaseCustomers, "Modify customer "+id, "Modified customer "+id, err)
	}
}

func (d *Driver) runHotels(ctx context.Context, hotels map[string]HotelInput, report *Report) {
	for _, id := range model.SortedIDs(hotels) {
		info := hotels[id]

		err := d.hotels.Create(ctx, &model.Hotel{
			ID:          id,
			HotelRecord: model.HotelRecord{Name: info.Name, TotalRooms: info.TotalRooms},
		})
		if !d.record(report, PhaseHotels, "Create hotel "+id, "Created hotel "+id, err) {
			continue
		}

		_, err = d.hotels.GetByID(ctx, id)
		d.record(report, PhaseHotels, "Display hotel "+id, "Displayed hotel "+id, err)

		err = d.hotels.Update(ctx, id, &model.HotelUpdate{Name: info.Name + modifiedSuffix})
		d.record(report, PhaseHotels, "Modify hotel "+id, "Modified hotel "+id, err)

		for _, room := range info.ReservedRooms {
			err = d.hotels.ReserveRoom(ctx, id, room)
			d.record(report, PhaseHotels,
				formatRoom("Reserve room", room, id),
				formatRoom("Reserved room", room, id),
				err,
			)
		}
	}
}

func (d *Driver) runReservations(ctx context.Context, reservations map[string]ReservationInput, report *Report) {
	for _, id := range model.SortedIDs(reservations) {
		info := reservations[id]

		err := d.reservations.Create(ctx, &model.Reservation{
			ID: id,
			ReservationRecord: model.ReservationRecord{
				CustomerID: info.CustomerID,
				HotelID:    info.HotelID,
				Rooms:      info.Rooms,
				CheckIn:    info.CheckIn,
				CheckOut:   info.CheckOut,
			},
		})
		if !d.record(report, PhaseReservations, "Create reservation "+id, "Created reservation "+id, err) {
			continue
		}

		err = d.reservations.Cancel(ctx, id)
		d.record(report, PhaseReservations, "Cancel reservation "+id, "Cancelled reservation "+id, err)
	}
}

func (d *Driver) runDeletes(ctx context.Context, in *Input, report *Report) {
	for _, id := range model.SortedIDs(in.Customers) {
		err := d.customers.Delete(ctx, id)
		d.record(report, PhaseDeletes, "Delete customer "+id, "Deleted customer "+id, err)
	}
	for _, id := range model.SortedIDs(in.Hotels) {
		err := d.hotels.Delete(ctx, id)
		d.record(report, PhaseDeletes, "Delete hotel "+id, "Deleted hotel "+id, err)
	}
}

// record appends the outcome of one step and reports whether it succeeded.
func (d *Driver) record(report *Report, phase, failAction, okAction string, err error) bool {
	if err != nil {
		res := Result{Phase: phase, Action: failAction, Message: errorMessage(err)}
		report.Results = append(report.Results, res)
		d.log.Warn(res.String(), "phase", phase, "error", err)
		return false
	}

	res := Result{Phase: phase, Action: okAction, OK: true}
	report.Results = append(report.Results, res)
	d.log.Info(res.String(), "phase", phase)
	return true
}

func errorMessage(err error) string {
	if apperrors.IsAppError(err) {
		return apperrors.AsAppError(err).Message
	}
	return err.Error()
}
