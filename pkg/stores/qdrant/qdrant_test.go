package qdrant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sdk "github.com/qdrant/go-client/qdrant"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/hybrid-travel/pkg/types"
)

type fakeBackend struct {
	points      []*sdk.ScoredPoint
	queryErr    error
	lastQuery   *sdk.QueryPoints
	lastUpsert  *sdk.UpsertPoints
	upserts     int
	collections []string
	created     *sdk.CreateCollection
	count       uint64
}

func (fake *fakeBackend) Query(ctx context.Context, request *sdk.QueryPoints) ([]*sdk.ScoredPoint, error) {
	fake.lastQuery = request
	return fake.points, fake.queryErr
}

func (fake *fakeBackend) Upsert(ctx context.Context, request *sdk.UpsertPoints) (*sdk.UpdateResult, error) {
	fake.lastUpsert = request
	fake.upserts++
	return &sdk.UpdateResult{}, nil
}

func (fake *fakeBackend) Count(ctx context.Context, request *sdk.CountPoints) (uint64, error) {
	return fake.count, nil
}

func (fake *fakeBackend) ListCollections(ctx context.Context) ([]string, error) {
	return fake.collections, nil
}

func (fake *fakeBackend) CreateCollection(ctx context.Context, request *sdk.CreateCollection) error {
	fake.created = request
	return nil
}

func (fake *fakeBackend) Close() error {
	return nil
}

func TestSearch(t *testing.T) {
	Convey("Given a backend with two scored points", t, func() {
		backend := &fakeBackend{
			points: []*sdk.ScoredPoint{
				{
					Id:    sdk.NewIDUUID(PointID("attraction_saigon_zoo")),
					Score: 0.83,
					Payload: sdk.NewValueMap(map[string]any{
						"id":          "attraction_saigon_zoo",
						"name":        "Saigon Zoo and Botanical Gardens",
						"type":        "Attraction",
						"city":        "Ho Chi Minh City",
						"tags":        []any{"zoo", "family"},
						"description": "One of the oldest zoos in the world.",
					}),
				},
				{
					Id:    sdk.NewIDNum(7),
					Score: 0.41,
					Payload: sdk.NewValueMap(map[string]any{
						"region": "Mekong Delta",
						"text":   "Floating markets",
					}),
				},
			},
		}

		store := NewStore(WithBackend(backend), WithCollection("travel"))
		matches, err := store.Search(context.Background(), []float32{0.1, 0.2}, 0)

		Convey("It should ask for the default number of results", func() {
			So(err, ShouldBeNil)
			So(backend.lastQuery.GetCollectionName(), ShouldEqual, "travel")
			So(backend.lastQuery.GetLimit(), ShouldEqual, uint64(DefaultTopK))
		})

		Convey("It should keep the index order and payload", func() {
			So(matches, ShouldHaveLength, 2)
			So(matches[0].Name, ShouldEqual, "Saigon Zoo and Botanical Gardens")
			So(matches[0].Location, ShouldEqual, "Ho Chi Minh City")
			So(matches[0].Tags, ShouldResemble, []string{"zoo", "family"})
			So(matches[0].Score, ShouldAlmostEqual, 0.83, 0.0001)
		})

		Convey("It should fill in missing fields", func() {
			So(matches[1].ID, ShouldEqual, "7")
			So(matches[1].Name, ShouldEqual, "Unknown")
			So(matches[1].Type, ShouldEqual, "Unknown")
			So(matches[1].Location, ShouldEqual, "Mekong Delta")
			So(matches[1].Description, ShouldEqual, "Floating markets")
		})
	})

	Convey("Given a failing backend", t, func() {
		store := NewStore(WithBackend(&fakeBackend{queryErr: errors.New("unavailable")}))
		_, err := store.Search(context.Background(), []float32{0.1}, 3)

		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "unavailable")
	})
}

func TestUpsert(t *testing.T) {
	Convey("Given two places and their vectors", t, func() {
		backend := &fakeBackend{}
		store := NewStore(WithBackend(backend))

		places := []types.Place{
			{ID: "city_hanoi", Name: "Hanoi", Type: "City", Region: "North", Tags: []string{"culture"}},
			{ID: "city_hue", Name: "Hue", Type: "City"},
		}

		err := store.Upsert(context.Background(), places, [][]float32{{0.1}, {0.2}})

		Convey("It should write one point per place with a stable id", func() {
			So(err, ShouldBeNil)
			So(backend.lastUpsert.GetPoints(), ShouldHaveLength, 2)
			So(backend.lastUpsert.GetPoints()[0].GetId().GetUuid(), ShouldEqual, PointID("city_hanoi"))
			So(PointID("city_hanoi"), ShouldEqual, PointID("city_hanoi"))
			So(PointID("city_hanoi"), ShouldNotEqual, PointID("city_hue"))
		})

		Convey("It should store the fields search reads back", func() {
			payload := backend.lastUpsert.GetPoints()[0].GetPayload()

			So(payload["name"].GetStringValue(), ShouldEqual, "Hanoi")
			So(payload["region"].GetStringValue(), ShouldEqual, "North")
			So(payload["text"].GetStringValue(), ShouldStartWith, "Hanoi (City) in North")
		})
	})

	Convey("Given mismatched inputs", t, func() {
		store := NewStore(WithBackend(&fakeBackend{}))
		err := store.Upsert(context.Background(), []types.Place{{ID: "a"}}, nil)

		So(err, ShouldNotBeNil)
	})
}

func TestEnsureCollection(t *testing.T) {
	Convey("Given a backend without the collection", t, func() {
		backend := &fakeBackend{collections: []string{"other"}}
		store := NewStore(WithBackend(backend))

		So(store.EnsureCollection(context.Background(), 384), ShouldBeNil)
		So(backend.created, ShouldNotBeNil)
		So(backend.created.GetCollectionName(), ShouldEqual, "vietnam-travel")
		So(backend.created.GetVectorsConfig().GetParams().GetSize(), ShouldEqual, uint64(384))
	})

	Convey("Given a backend that already has it", t, func() {
		backend := &fakeBackend{collections: []string{"vietnam-travel"}}
		store := NewStore(WithBackend(backend))

		So(store.EnsureCollection(context.Background(), 384), ShouldBeNil)
		So(backend.created, ShouldBeNil)
	})
}

type fakeEmbedder struct {
	batches [][]string
	err     error
}

func (embedder *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embedder.batches = append(embedder.batches, texts)

	if embedder.err != nil {
		return nil, embedder.err
	}

	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}

	return out, nil
}

func (embedder *fakeEmbedder) Dim() int {
	return 3
}

func TestLoad(t *testing.T) {
	Convey("Given five places and a batch size of two", t, func() {
		var places []types.Place

		for i := 0; i < 5; i++ {
			places = append(places, types.Place{ID: fmt.Sprintf("place_%d", i), Name: fmt.Sprintf("Place %d", i), Type: "Attraction"})
		}

		backend := &fakeBackend{}
		embedder := &fakeEmbedder{}
		store := NewStore(WithBackend(backend), WithCollection("travel"))

		var reported []int
		err := store.Load(context.Background(), embedder, places, 2, func(done, total int) {
			reported = append(reported, done)
		})

		Convey("It should create the collection and upsert in three batches", func() {
			So(err, ShouldBeNil)
			So(backend.created, ShouldNotBeNil)
			So(backend.created.GetVectorsConfig().GetParams().GetSize(), ShouldEqual, 3)
			So(backend.upserts, ShouldEqual, 3)
			So(embedder.batches, ShouldHaveLength, 3)
			So(embedder.batches[0][0], ShouldContainSubstring, "Place 0 (Attraction)")
			So(reported, ShouldResemble, []int{2, 4, 5})
		})
	})

	Convey("Given an embedder that fails", t, func() {
		store := NewStore(WithBackend(&fakeBackend{collections: []string{"travel"}}), WithCollection("travel"))

		err := store.Load(context.Background(), &fakeEmbedder{err: errors.New("oom")}, []types.Place{{ID: "a", Name: "A"}}, 0, nil)

		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "oom")
	})
}
