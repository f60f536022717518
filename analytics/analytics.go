// Package analytics aggregates the dashboard numbers: revenue, check-in
// progress and category performance. Cross-store joins happen here, by
// categoryId lookup; a booking whose category was deleted counts under
// the Unknown label with zero revenue.
package analytics

import (
	"sort"
	"time"

	"github.com/anumeetkumar/restaurants-booking/bookings"
	"github.com/anumeetkumar/restaurants-booking/categories"
	"github.com/anumeetkumar/restaurants-booking/utils"
)

// UnknownCategory labels bookings whose category no longer exists.
const UnknownCategory = "Unknown"

const trendDays = 7

type Summary struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	TodayRevenue     float64 `json:"todayRevenue"`
	TotalBookings    int     `json:"totalBookings"`
	TodayBookings    int     `json:"todayBookings"`
	CheckedIn        int     `json:"checkedIn"`
	Pending          int     `json:"pending"`
	CheckInRate      float64 `json:"checkInRate"`
	AvgPartySize     float64 `json:"avgPartySize"`
	TotalCategories  int     `json:"totalCategories"`
	ActiveCategories int     `json:"activeCategories"`
	PopularCategory  string  `json:"popularCategory"`
}

type TrendPoint struct {
	Date     string  `json:"date"`
	Label    string  `json:"label"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type CategoryPerformance struct {
	CategoryID   string  `json:"categoryId,omitempty"`
	CategoryName string  `json:"categoryName"`
	Bookings     int     `json:"bookings"`
	Persons      int     `json:"persons"`
	Revenue      float64 `json:"revenue"`
}

// Service reads from the category and booking stores; it never mutates.
type Service struct {
	Categories *categories.Store
	Bookings   *bookings.Store
}

func NewService(c *categories.Store, b *bookings.Store) *Service {
	return &Service{Categories: c, Bookings: b}
}

func priceIndex(cats []categories.BuffetCategory) map[string]float64 {
	idx := make(map[string]float64, len(cats))
	for _, c := range cats {
		idx[c.ID] = c.PricePerPlate
	}
	return idx
}

func bookingRevenue(b bookings.Booking, prices map[string]float64) float64 {
	// orphaned category reference contributes nothing
	return float64(b.NoOfPersons) * prices[b.CategoryID]
}

// Summary computes the dashboard stat cards.
func (s *Service) Summary() Summary {
	cats := s.Categories.All()
	books := s.Bookings.All()
	prices := priceIndex(cats)

	var sum Summary
	sum.TotalBookings = len(books)
	sum.TotalCategories = len(cats)

	perCategory := make(map[string]int)
	totalPersons := 0
	for _, b := range books {
		rev := bookingRevenue(b, prices)
		sum.TotalRevenue += rev
		if utils.IsToday(b.CreatedAt) {
			sum.TodayBookings++
			sum.TodayRevenue += rev
		}
		if b.CheckedIn {
			sum.CheckedIn++
		} else {
			sum.Pending++
		}
		totalPersons += b.NoOfPersons
		perCategory[b.CategoryID]++
	}

	if len(books) > 0 {
		sum.CheckInRate = float64(sum.CheckedIn) / float64(len(books))
		sum.AvgPartySize = float64(totalPersons) / float64(len(books))
	}

	best := -1
	for _, c := range cats {
		if perCategory[c.ID] > 0 {
			sum.ActiveCategories++
		}
		if perCategory[c.ID] > best {
			best = perCategory[c.ID]
			sum.PopularCategory = c.Name
		}
	}
	return sum
}

// Trend returns the last seven days of revenue and booking counts,
// oldest first, today last.
func (s *Service) Trend() []TrendPoint {
	prices := priceIndex(s.Categories.All())
	books := s.Bookings.All()

	now := time.Now()
	points := make([]TrendPoint, trendDays)
	index := make(map[string]int, trendDays)
	for i := 0; i < trendDays; i++ {
		day := now.AddDate(0, 0, -(trendDays - 1 - i))
		key := day.Format("2006-01-02")
		points[i] = TrendPoint{Date: key, Label: day.Format("Jan 2")}
		index[key] = i
	}

	for _, b := range books {
		key := b.CreatedAt.Local().Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			continue
		}
		points[i].Bookings++
		points[i].Revenue += bookingRevenue(b, prices)
	}
	return points
}

// ActivityItem is one row of the recent-activity feed.
type ActivityItem struct {
	BookingID    string    `json:"bookingId"`
	Name         string    `json:"name"`
	NoOfPersons  int       `json:"noOfPersons"`
	CategoryName string    `json:"categoryName"`
	CheckedIn    bool      `json:"checkedIn"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Recent returns the latest bookings by updatedAt, newest first. A
// check-in refreshes updatedAt, so checked-in guests surface on top.
func (s *Service) Recent(limit int) []ActivityItem {
	cats := s.Categories.All()
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	books := s.Bookings.All()
	sort.Slice(books, func(i, j int) bool {
		return books[i].UpdatedAt.After(books[j].UpdatedAt)
	})
	if limit > 0 && len(books) > limit {
		books = books[:limit]
	}

	out := make([]ActivityItem, 0, len(books))
	for _, b := range books {
		name, ok := names[b.CategoryID]
		if !ok {
			name = UnknownCategory
		}
		out = append(out, ActivityItem{
			BookingID:    b.ID,
			Name:         b.Name,
			NoOfPersons:  b.NoOfPersons,
			CategoryName: name,
			CheckedIn:    b.CheckedIn,
			UpdatedAt:    b.UpdatedAt,
		})
	}
	return out
}

// PerCategory breaks bookings and revenue down by category. Orphaned
// bookings are grouped into a trailing Unknown row.
func (s *Service) PerCategory() []CategoryPerformance {
	cats := s.Categories.All()
	books := s.Bookings.All()
	prices := priceIndex(cats)

	known := make(map[string]*CategoryPerformance, len(cats))
	out := make([]CategoryPerformance, 0, len(cats)+1)
	for _, c := range cats {
		out = append(out, CategoryPerformance{CategoryID: c.ID, CategoryName: c.Name})
		known[c.ID] = &out[len(out)-1]
	}

	var orphan CategoryPerformance
	orphan.CategoryName = UnknownCategory
	for _, b := range books {
		if perf, ok := known[b.CategoryID]; ok {
			perf.Bookings++
			perf.Persons += b.NoOfPersons
			perf.Revenue += bookingRevenue(b, prices)
			continue
		}
		orphan.Bookings++
		orphan.Persons += b.NoOfPersons
	}
	if orphan.Bookings > 0 {
		out = append(out, orphan)
	}
	return out
}
