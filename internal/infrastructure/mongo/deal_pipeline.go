package mongo

import (
	"github.com/mzansi-fresh-finds/api/internal/public/application"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// pipelineCollections は $lookup の参照先コレクション名。
type pipelineCollections struct {
	Stores string
	Users  string
}

// buildDiscoveryPipeline は絞り込み → 店舗結合 → 作成者結合 → 割引率算出 → 並べ替え → 射影 の順で
// 集約パイプラインを組み立てる。距離は含まない（アプリケーション層で付与する）。
func buildDiscoveryPipeline(filter application.DealFilter, sortKey application.SortKey, cols pipelineCollections) (mongo.Pipeline, error) {
	match, err := buildDealMatch(filter)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{match}
	pipeline = append(pipeline, joinStages(cols)...)
	pipeline = append(pipeline, discountStage(), sortStage(sortKey), projectStage())
	return pipeline, nil
}

// buildDealLookupPipeline は ID 指定の単一ディール取得用。適格性の判定は呼び出し側で行う。
func buildDealLookupPipeline(id primitive.ObjectID, cols pipelineCollections) mongo.Pipeline {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}}}
	pipeline = append(pipeline, joinStages(cols)...)
	pipeline = append(pipeline, discountStage(), projectStage())
	return pipeline
}

// buildDealMatch builds the $match stage. quantityAvailable > 0 is always applied.
func buildDealMatch(filter application.DealFilter) (bson.D, error) {
	match := bson.D{
		{Key: "isActive", Value: filter.IsActive},
		{Key: "quantityAvailable", Value: bson.D{{Key: "$gt", Value: 0}}},
	}

	if len(filter.StoreIDs) > 0 {
		storeIDs, err := toObjectIDs(filter.StoreIDs)
		if err != nil {
			return nil, err
		}
		match = append(match, bson.E{Key: "store", Value: bson.D{{Key: "$in", Value: storeIDs}}})
	}
	if filter.Category != nil {
		match = append(match, bson.E{Key: "category", Value: *filter.Category})
	}

	price := bson.D{}
	if filter.MinPrice != nil {
		price = append(price, bson.E{Key: "$gte", Value: *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		price = append(price, bson.E{Key: "$lte", Value: *filter.MaxPrice})
	}
	if len(price) > 0 {
		match = append(match, bson.E{Key: "discountedPrice", Value: price})
	}

	return bson.D{{Key: "$match", Value: match}}, nil
}

// joinStages は店舗と作成者を内部結合する。参照先が存在しないディールは結果から落ちる。
func joinStages(cols pipelineCollections) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: cols.Stores},
			{Key: "localField", Value: "store"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "storeInfo"},
		}}},
		{{Key: "$unwind", Value: "$storeInfo"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: cols.Users},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userInfo"},
		}}},
		{{Key: "$unwind", Value: "$userInfo"}},
	}
}

// discountStage computes (original - discounted) / original * 100, or 0 when original <= 0.
func discountStage() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: "discountPercentage", Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: bson.D{{Key: "$gt", Value: bson.A{"$originalPrice", 0}}}},
			{Key: "then", Value: bson.D{{Key: "$multiply", Value: bson.A{
				bson.D{{Key: "$divide", Value: bson.A{
					bson.D{{Key: "$subtract", Value: bson.A{"$originalPrice", "$discountedPrice"}}},
					"$originalPrice",
				}}},
				100,
			}}}},
			{Key: "else", Value: 0},
		}}}},
	}}}
}

// sortStage は並べ替えキーを $sort に変換する。distance はここでは newest と同じ順序になり、
// 同順位は _id 降順で決定的に並ぶ。
func sortStage(sortKey application.SortKey) bson.D {
	var primary bson.E
	switch sortKey {
	case application.SortExpiry:
		primary = bson.E{Key: "bestBeforeDate", Value: 1}
	case application.SortDiscount:
		primary = bson.E{Key: "discountPercentage", Value: -1}
	case application.SortPriceAsc:
		primary = bson.E{Key: "discountedPrice", Value: 1}
	case application.SortPriceDesc:
		primary = bson.E{Key: "discountedPrice", Value: -1}
	default:
		primary = bson.E{Key: "createdAt", Value: -1}
	}
	return bson.D{{Key: "$sort", Value: bson.D{primary, {Key: "_id", Value: -1}}}}
}

func projectStage() bson.D {
	return bson.D{{Key: "$project", Value: bson.D{
		{Key: "itemName", Value: 1},
		{Key: "description", Value: 1},
		{Key: "category", Value: 1},
		{Key: "originalPrice", Value: 1},
		{Key: "discountedPrice", Value: 1},
		{Key: "quantityAvailable", Value: 1},
		{Key: "bestBeforeDate", Value: 1},
		{Key: "pickupInstructions", Value: 1},
		{Key: "imageURL", Value: 1},
		{Key: "isActive", Value: 1},
		{Key: "createdAt", Value: 1},
		{Key: "updatedAt", Value: 1},
		{Key: "discountPercentage", Value: 1},
		{Key: "store", Value: bson.D{
			{Key: "_id", Value: "$storeInfo._id"},
			{Key: "storeName", Value: "$storeInfo.storeName"},
			{Key: "address", Value: "$storeInfo.address"},
			{Key: "location", Value: "$storeInfo.location"},
			{Key: "contactInfo", Value: "$storeInfo.contactInfo"},
			{Key: "openingHours", Value: "$storeInfo.openingHours"},
			{Key: "logoURL", Value: "$storeInfo.logoURL"},
		}},
		{Key: "user", Value: bson.D{
			{Key: "_id", Value: "$userInfo._id"},
			{Key: "name", Value: "$userInfo.name"},
		}},
	}}}
}

func toObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	result := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, application.ErrInvalidID
		}
		result = append(result, oid)
	}
	return result, nil
}
