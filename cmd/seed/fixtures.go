package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	mongodoc "github.com/mzansi-fresh-finds/api/internal/infrastructure/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type city struct {
	name      string
	latitude  float64
	longitude float64
}

var cities = []city{
	{"Johannesburg", -26.2041, 28.0473},
	{"Pretoria", -25.7479, 28.2293},
	{"Cape Town", -33.9249, 18.4241},
	{"Durban", -29.8587, 31.0218},
}

var storeNames = []string{
	"Corner Bakery", "Mama's Spaza", "Green Grocer", "Fresh Fish Market",
	"Butchery 24", "Daily Dairy", "Fruit Basket", "Kota King",
}

type itemTemplate struct {
	name     string
	category string
	price    float64
}

var dealItems = []itemTemplate{
	{"Sourdough loaf", "Bakery", 45},
	{"Vetkoek (6 pack)", "Bakery", 30},
	{"Full cream milk 2L", "Dairy", 32},
	{"Plain yoghurt 1kg", "Dairy", 48},
	{"Bananas 1kg", "Produce", 25},
	{"Spinach bunch", "Produce", 18},
	{"Hake fillets 500g", "Seafood", 89},
	{"Boerewors 1kg", "Meat", 110},
	{"Chicken braai pack", "Meat", 125},
	{"Ready meal lasagne", "Prepared", 65},
}

func generateUsers(now time.Time) []mongodoc.UserDocument {
	created := now
	return []mongodoc.UserDocument{
		{ID: primitive.NewObjectID(), Name: "Admin", Email: "admin@freshfinds.example", Role: "admin", CreatedAt: &created},
		{ID: primitive.NewObjectID(), Name: "Thandi Owner", Email: "thandi@freshfinds.example", Role: "store_owner", CreatedAt: &created},
		{ID: primitive.NewObjectID(), Name: "Pieter Owner", Email: "pieter@freshfinds.example", Role: "store_owner", CreatedAt: &created},
		{ID: primitive.NewObjectID(), Name: "Lerato Shopper", Email: "lerato@freshfinds.example", Role: "consumer", CreatedAt: &created},
	}
}

// generateStores は各都市の中心から数 km 以内に店舗を散らす。オーナーは store_owner ロールのユーザー。
func generateStores(rng *rand.Rand, users []mongodoc.UserDocument, count int, now time.Time) []mongodoc.StoreDocument {
	var owners []primitive.ObjectID
	for _, u := range users {
		if u.Role == "store_owner" {
			owners = append(owners, u.ID)
		}
	}

	stores := make([]mongodoc.StoreDocument, 0, count)
	for i := 0; i < count; i++ {
		c := cities[i%len(cities)]
		lat := round(c.latitude+(rng.Float64()-0.5)*0.08, 5)
		lon := round(c.longitude+(rng.Float64()-0.5)*0.08, 5)
		created := now.Add(-time.Duration(count-i) * time.Hour)
		name := storeNames[i%len(storeNames)]
		stores = append(stores, mongodoc.StoreDocument{
			ID:           primitive.NewObjectID(),
			User:         owners[i%len(owners)],
			StoreName:    fmt.Sprintf("%s %s", name, c.name),
			Address:      fmt.Sprintf("%d Main Rd, %s", 10+rng.Intn(300), c.name),
			Location:     &mongodoc.GeoJSONPoint{Type: "Point", Coordinates: []float64{lon, lat}},
			ContactInfo:  fmt.Sprintf("+27 %02d %03d %04d", 10+rng.Intn(80), rng.Intn(1000), rng.Intn(10000)),
			OpeningHours: "Mon-Sat 08:00-18:00",
			CreatedAt:    &created,
			UpdatedAt:    &created,
		})
	}
	return stores
}

// generateDeals は割引率 10〜70% のディールを作る。約 1 割は在庫切れか非公開。
func generateDeals(rng *rand.Rand, stores []mongodoc.StoreDocument, perStore int, now time.Time) []mongodoc.DealDocument {
	deals := make([]mongodoc.DealDocument, 0, len(stores)*perStore)
	for _, store := range stores {
		for j := 0; j < perStore; j++ {
			item := dealItems[rng.Intn(len(dealItems))]
			discount := 0.1 + rng.Float64()*0.6
			created := now.Add(-time.Duration(rng.Intn(72)) * time.Hour)
			qty := 1 + rng.Intn(12)
			active := true
			switch rng.Intn(10) {
			case 0:
				qty = 0
			case 1:
				active = false
			}
			deals = append(deals, mongodoc.DealDocument{
				ID:                 primitive.NewObjectID(),
				Store:              store.ID,
				User:               store.User,
				ItemName:           item.name,
				Description:        fmt.Sprintf("%s close to best-before", item.name),
				Category:           item.category,
				OriginalPrice:      item.price,
				DiscountedPrice:    round(item.price*(1-discount), 2),
				QuantityAvailable:  qty,
				BestBeforeDate:     now.AddDate(0, 0, 1+rng.Intn(4)).Truncate(24 * time.Hour),
				PickupInstructions: "Collect at the till before closing",
				IsActive:           active,
				CreatedAt:          created,
				UpdatedAt:          created,
			})
		}
	}
	return deals
}

func generateProducts(rng *rand.Rand, admin primitive.ObjectID, now time.Time) []mongodoc.ProductDocument {
	products := make([]mongodoc.ProductDocument, 0, len(dealItems))
	for _, item := range dealItems {
		owner := admin
		products = append(products, mongodoc.ProductDocument{
			ID:           primitive.NewObjectID(),
			User:         &owner,
			Name:         item.name,
			Category:     item.category,
			Description:  fmt.Sprintf("Catalog entry for %s", item.name),
			Price:        item.price,
			CountInStock: rng.Intn(50),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return products
}

func round(val float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(val*p) / p
}
