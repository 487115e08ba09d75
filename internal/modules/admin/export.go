package admin

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"servicedir/internal/repository"
)

// ExportServicesCSV streams every listing, active or not, as CSV.
func (s *Service) ExportServicesCSV(ctx context.Context, w io.Writer) error {
	records, err := s.services.FindAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "name", "category", "city", "address", "phone", "email",
		"rating", "review_count", "premium", "verified", "active", "created_at",
	}); err != nil {
		return err
	}

	for _, svc := range records {
		row := []string{
			svc.ID,
			svc.Name,
			svc.CategoryID,
			svc.City,
			svc.Address,
			svc.Phone,
			svc.Email,
			fmt.Sprintf("%.2f", svc.Rating),
			strconv.Itoa(svc.ReviewCount),
			strconv.FormatBool(svc.IsPremium),
			strconv.FormatBool(svc.IsVerified),
			strconv.FormatBool(svc.IsActive),
			svc.CreatedAt.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportBookingsCSV streams bookings matching the given filters as CSV.
func (s *Service) ExportBookingsCSV(ctx context.Context, f repository.BookingFilters, w io.Writer) error {
	bookings, err := s.bookings.List(ctx, f)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "service_id", "service_name", "user_name", "user_email",
		"user_phone", "date", "time", "status", "created_at",
	}); err != nil {
		return err
	}

	for _, b := range bookings {
		row := []string{
			b.ID,
			b.ServiceID,
			b.ServiceName,
			b.UserName,
			b.UserEmail,
			b.UserPhone,
			b.Date,
			b.Time,
			string(b.Status),
			b.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
