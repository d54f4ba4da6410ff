package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	mongodoc "github.com/mzansi-fresh-finds/api/internal/infrastructure/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	envFile          string
	storeCount       int
	dealsPerStore    int
	dropCollections  bool
	migrateLocations bool
	randomSeed       int64
}

func main() {
	opts := parseFlags()

	if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
		log.Fatalf("環境変数の読み込みに失敗しました: %v", err)
	}

	cols := mongodoc.Collections{
		Stores:   envOrDefault("STORE_COLLECTION", "stores"),
		Deals:    envOrDefault("DEAL_COLLECTION", "deals"),
		Users:    envOrDefault("USER_COLLECTION", "users"),
		Products: envOrDefault("PRODUCT_COLLECTION", "products"),
	}
	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "fresh-finds")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	// -migrate-locations は既存データの移行のみ行い、投入はしない
	if opts.migrateLocations {
		updated, failed, err := mongodoc.MigrateStoreLocations(ctx, db, cols.Stores)
		if err != nil {
			log.Fatalf("location 移行に失敗しました: %v", err)
		}
		log.Printf("location 移行完了: updated=%d failed=%d", updated, failed)
		if err := mongodoc.EnsureIndexes(ctx, db, cols); err != nil {
			log.Fatalf("インデックス作成に失敗しました: %v", err)
		}
		return
	}

	if opts.dropCollections {
		dropCollections(ctx, db, cols)
		log.Printf("既存コレクションを削除しました")
	}

	if err := mongodoc.EnsureIndexes(ctx, db, cols); err != nil {
		log.Fatalf("インデックス作成に失敗しました: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	now := time.Now().UTC()

	users := generateUsers(now)
	stores := generateStores(rng, users, opts.storeCount, now)
	deals := generateDeals(rng, stores, opts.dealsPerStore, now)
	products := generateProducts(rng, users[0].ID, now)

	steps := []struct {
		name string
		coll string
		docs []interface{}
	}{
		{"ユーザー", cols.Users, toAnySlice(users)},
		{"店舗", cols.Stores, toAnySlice(stores)},
		{"ディール", cols.Deals, toAnySlice(deals)},
		{"商品", cols.Products, toAnySlice(products)},
	}
	for _, step := range steps {
		if err := insertMany(ctx, db.Collection(step.coll), step.docs); err != nil {
			log.Fatalf("%sデータの挿入に失敗しました: %v", step.name, err)
		}
	}

	log.Printf("Seed 完了: users=%d stores=%d deals=%d products=%d", len(users), len(stores), len(deals), len(products))
	log.Printf("Mongo: %s / %s", mongoURI, dbName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envFile, "env-file", ".env", "読み込む env ファイル (存在しなければ無視)")
	flag.IntVar(&opts.storeCount, "stores", 8, "生成する店舗数")
	flag.IntVar(&opts.dealsPerStore, "deals", 4, "店舗あたりのディール数")
	flag.BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	flag.BoolVar(&opts.migrateLocations, "migrate-locations", false, "旧 latitude/longitude から location を補完して終了する")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "乱数シード（再現用）")
	flag.Parse()

	if opts.storeCount <= 0 {
		log.Fatal("stores は 1 以上を指定してください")
	}
	if opts.dealsPerStore < 0 {
		opts.dealsPerStore = 0
	}
	return opts
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, cols mongodoc.Collections) {
	for _, name := range []string{cols.Stores, cols.Deals, cols.Users, cols.Products} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Printf("WARN: コレクション %s の削除に失敗: %v", name, err)
		}
	}
}

func insertMany(ctx context.Context, col *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := col.InsertMany(ctx, docs)
	return err
}

func toAnySlice[T any](in []T) []interface{} {
	out := make([]interface{}, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}
