package analytics

import (
	"testing"
	"time"

	"github.com/anumeetkumar/restaurants-booking/bookings"
	"github.com/anumeetkumar/restaurants-booking/categories"
	"github.com/anumeetkumar/restaurants-booking/persist"
	"github.com/anumeetkumar/restaurants-booking/qr"
)

func newTestService(t *testing.T) (*Service, *categories.Store, *bookings.Store) {
	t.Helper()
	catStore, err := categories.NewStore(persist.NewMemoryKV())
	if err != nil {
		t.Fatalf("category store: %v", err)
	}
	bookStore, err := bookings.NewStore(persist.NewMemoryKV(), qr.BookingPayload)
	if err != nil {
		t.Fatalf("booking store: %v", err)
	}
	return NewService(catStore, bookStore), catStore, bookStore
}

func TestSummaryRevenue(t *testing.T) {
	svc, cats, books := newTestService(t)

	veg, _ := cats.Add(categories.CategoryInput{Name: "Veg Buffet", Description: "veg", PricePerPlate: 15.00})
	b, _ := books.Add(bookings.BookingInput{Name: "Alice", Phone: "5551234567", NoOfPersons: 4, CategoryID: veg.ID})
	books.CheckIn(b.ID)

	sum := svc.Summary()
	if sum.TotalRevenue != 60.00 {
		t.Fatalf("expected 4 * 15.00 = 60.00, got %v", sum.TotalRevenue)
	}
	if sum.TodayBookings != 1 || sum.TodayRevenue != 60.00 {
		t.Fatalf("today numbers wrong: %+v", sum)
	}
	if sum.CheckedIn != 1 || sum.Pending != 0 || sum.CheckInRate != 1.0 {
		t.Fatalf("check-in numbers wrong: %+v", sum)
	}
	if sum.AvgPartySize != 4.0 {
		t.Fatalf("avg party size wrong: %v", sum.AvgPartySize)
	}
	if sum.ActiveCategories != 1 || sum.PopularCategory != "Veg Buffet" {
		t.Fatalf("category numbers wrong: %+v", sum)
	}
}

func TestOrphanedBookingContributesNoRevenue(t *testing.T) {
	svc, cats, books := newTestService(t)

	veg, _ := cats.Add(categories.CategoryInput{Name: "Veg Buffet", Description: "veg", PricePerPlate: 15.00})
	books.Add(bookings.BookingInput{Name: "Alice", Phone: "555", NoOfPersons: 4, CategoryID: veg.ID})
	cats.Delete(veg.ID)

	sum := svc.Summary()
	if sum.TotalBookings != 1 {
		t.Fatal("booking must survive category deletion")
	}
	if sum.TotalRevenue != 0 {
		t.Fatalf("orphaned booking must not produce revenue, got %v", sum.TotalRevenue)
	}
}

func TestPerCategoryGroupsOrphansUnderUnknown(t *testing.T) {
	svc, cats, books := newTestService(t)

	veg, _ := cats.Add(categories.CategoryInput{Name: "Veg Buffet", Description: "veg", PricePerPlate: 10})
	books.Add(bookings.BookingInput{Name: "a", Phone: "1", NoOfPersons: 2, CategoryID: veg.ID})
	books.Add(bookings.BookingInput{Name: "b", Phone: "2", NoOfPersons: 3, CategoryID: "deleted-cat"})

	rows := svc.PerCategory()
	if len(rows) != 2 {
		t.Fatalf("expected veg + unknown rows, got %+v", rows)
	}
	if rows[0].CategoryName != "Veg Buffet" || rows[0].Bookings != 1 || rows[0].Revenue != 20 {
		t.Fatalf("veg row wrong: %+v", rows[0])
	}
	last := rows[len(rows)-1]
	if last.CategoryName != UnknownCategory || last.Bookings != 1 || last.Revenue != 0 {
		t.Fatalf("unknown row wrong: %+v", last)
	}
}

func TestTrendShape(t *testing.T) {
	svc, cats, books := newTestService(t)

	veg, _ := cats.Add(categories.CategoryInput{Name: "Veg", Description: "v", PricePerPlate: 15})
	books.Add(bookings.BookingInput{Name: "Alice", Phone: "555", NoOfPersons: 4, CategoryID: veg.ID})

	trend := svc.Trend()
	if len(trend) != 7 {
		t.Fatalf("expected 7 days, got %d", len(trend))
	}
	today := trend[len(trend)-1]
	if today.Bookings != 1 || today.Revenue != 60 {
		t.Fatalf("today's point wrong: %+v", today)
	}
	for _, p := range trend[:len(trend)-1] {
		if p.Bookings != 0 || p.Revenue != 0 {
			t.Fatalf("unexpected numbers on %s: %+v", p.Date, p)
		}
	}
}

func TestRecentOrdersByUpdatedAt(t *testing.T) {
	svc, cats, books := newTestService(t)

	veg, _ := cats.Add(categories.CategoryInput{Name: "Veg", Description: "v", PricePerPlate: 10})
	first, _ := books.Add(bookings.BookingInput{Name: "First", Phone: "1", NoOfPersons: 1, CategoryID: veg.ID})
	books.Add(bookings.BookingInput{Name: "Second", Phone: "2", NoOfPersons: 1, CategoryID: "gone"})

	// checking in the older booking bumps it to the top of the feed
	time.Sleep(5 * time.Millisecond)
	books.CheckIn(first.ID)

	recent := svc.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("expected 2 items, got %d", len(recent))
	}
	if recent[0].Name != "First" || !recent[0].CheckedIn {
		t.Fatalf("expected checked-in booking first: %+v", recent[0])
	}
	if recent[1].CategoryName != UnknownCategory {
		t.Fatalf("orphaned booking must show Unknown: %+v", recent[1])
	}

	if got := svc.Recent(1); len(got) != 1 {
		t.Fatalf("limit not applied: %d", len(got))
	}
}

func TestSummaryEmptyStores(t *testing.T) {
	svc, _, _ := newTestService(t)
	sum := svc.Summary()
	if sum.TotalRevenue != 0 || sum.TotalBookings != 0 || sum.AvgPartySize != 0 || sum.CheckInRate != 0 {
		t.Fatalf("empty summary must be all zero: %+v", sum)
	}
}
