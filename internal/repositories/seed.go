package repositories

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shiptix/internal/domain/models"
)

type seedRoute struct {
	key      string
	shipID   string
	from, to string
	hour     int
	minute   int
	minutes  int
	economy  int64
}

var demoRoutes = []seedRoute{
	{"sby-mks", "ship-dobonsolo", "port-sby", "port-mks", 8, 0, 22 * 60, 350000},
	{"sby-mks-n", "ship-kelud", "port-sby", "port-mks", 20, 30, 23 * 60, 330000},
	{"mks-sby", "ship-dobonsolo", "port-mks", "port-sby", 9, 0, 22 * 60, 350000},
	{"jkt-btm", "ship-kelud", "port-jkt", "port-btm", 10, 0, 28 * 60, 420000},
	{"btm-jkt", "ship-kelud", "port-btm", "port-jkt", 16, 0, 28 * 60, 420000},
	{"jkt-sby", "ship-dharma", "port-jkt", "port-sby", 19, 0, 20 * 60, 300000},
	{"srg-ptk", "ship-dharma", "port-srg", "port-ptk", 14, 0, 34 * 60, 380000},
	{"ptk-srg", "ship-dharma", "port-ptk", "port-srg", 13, 0, 34 * 60, 380000},
}

// DemoSeed builds reference data plus two weeks of sailings starting on the
// calendar day of now in Asia/Jakarta. The admin account is admin/admin.
func DemoSeed(now time.Time) (SeedData, error) {
	wib, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return SeedData{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return SeedData{}, err
	}

	ports := []models.Port{
		{ID: "port-sby", Name: "Pelabuhan Tanjung Perak", City: "Surabaya", Code: "TPR", Timezone: "Asia/Jakarta"},
		{ID: "port-mks", Name: "Pelabuhan Soekarno-Hatta", City: "Makassar", Code: "MKS", Timezone: "Asia/Makassar"},
		{ID: "port-jkt", Name: "Pelabuhan Tanjung Priok", City: "Jakarta", Code: "TPK", Timezone: "Asia/Jakarta"},
		{ID: "port-btm", Name: "Pelabuhan Batam Centre", City: "Batam", Code: "BTM", Timezone: "Asia/Jakarta"},
		{ID: "port-srg", Name: "Pelabuhan Tanjung Emas", City: "Semarang", Code: "TES", Timezone: "Asia/Jakarta"},
		{ID: "port-ptk", Name: "Pelabuhan Dwikora", City: "Pontianak", Code: "DWK", Timezone: "Asia/Pontianak"},
	}
	portZone := map[string]*time.Location{}
	for _, p := range ports {
		portZone[p.ID] = p.Location(wib)
	}

	data := SeedData{
		Ports: ports,
		Operators: []models.Operator{
			{ID: "op-pelni", Name: "PT PELNI", Phone: "162", Email: "info@pelni.co.id"},
			{ID: "op-dlu", Name: "PT Dharma Lautan Utama", Phone: "031-3533111", Email: "cs@dluferry.co.id"},
		},
		Ships: []models.Ship{
			{ID: "ship-dobonsolo", Name: "KM Dobonsolo", Capacity: 1500, OperatorID: "op-pelni"},
			{ID: "ship-kelud", Name: "KM Kelud", Capacity: 2000, OperatorID: "op-pelni"},
			{ID: "ship-dharma", Name: "KM Dharma Kencana", Capacity: 900, OperatorID: "op-dlu"},
		},
		Users: []models.User{
			{ID: "user-admin", Name: "Administrator", Username: "admin", Email: "admin@shiptix.local", PasswordHash: string(hash), Role: "admin"},
		},
	}

	y, mo, d := now.In(wib).Date()
	for day := 0; day < 14; day++ {
		for _, rt := range demoRoutes {
			loc := portZone[rt.from]
			dep := time.Date(y, mo, d+day, rt.hour, rt.minute, 0, 0, loc).UTC()
			status := models.ScheduleScheduled
			if rt.key == "sby-mks" && day == 5 {
				status = models.ScheduleDelayed
			}
			id := fmt.Sprintf("sch-%s-%s", rt.key, dep.In(loc).Format("20060102"))
			classes := models.DefaultClasses()
			for i := range classes {
				classes[i].ID = fmt.Sprintf("%s-c%d", id, i+1)
				classes[i].Price = classes[i].Price - 350000 + rt.economy
			}
			data.Schedules = append(data.Schedules, models.Schedule{
				ID:              id,
				ShipID:          rt.shipID,
				DeparturePortID: rt.from,
				ArrivalPortID:   rt.to,
				DepartureTime:   dep,
				ArrivalTime:     dep.Add(time.Duration(rt.minutes) * time.Minute),
				DurationMinutes: rt.minutes,
				Classes:         classes,
				Status:          status,
			})
		}
	}
	return data, nil
}
