package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mzansi-fresh-finds/api/internal/config"
	"github.com/mzansi-fresh-finds/api/internal/server"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// .env は任意。本番では環境変数を直接渡す
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf(".env の読み込みに失敗: %v", err)
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.ServerLog.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}

	app := server.New(cfg, client)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
