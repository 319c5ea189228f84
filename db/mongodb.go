package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"song-recommender/models"
	"song-recommender/utils"
)

const mongoTimeout = 10 * time.Second

type MongoClient struct {
	client *mongo.Client
}

func NewMongoClient(uri string) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("error pinging MongoDB: %v", err)
	}

	return &MongoClient{client: client}, nil
}

func (c *MongoClient) tracks() *mongo.Collection {
	return c.client.Database("song-recommender").Collection("tracks")
}

func (c *MongoClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *MongoClient) RegisterTrack(path, title, artist string, duration float64) (uint32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	track := models.Track{
		ID:       utils.GenerateUniqueID(),
		Key:      utils.GenerateTrackKey(title, artist),
		Path:     path,
		Title:    title,
		Artist:   artist,
		Duration: duration,
	}

	if _, err := c.tracks().InsertOne(ctx, track); err != nil {
		return 0, fmt.Errorf("failed to register track: %v", err)
	}
	return track.ID, nil
}

func (c *MongoClient) GetTrackByKey(key string) (*models.Track, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var t models.Track
	err := c.tracks().FindOne(ctx, bson.M{"key": key}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up track: %v", err)
	}
	return &t, true, nil
}

func (c *MongoClient) GetAllTracks() ([]models.Track, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	cursor, err := c.tracks().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %v", err)
	}
	defer cursor.Close(ctx)

	var tracks []models.Track
	if err := cursor.All(ctx, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

func (c *MongoClient) TotalTracks() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	count, err := c.tracks().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count tracks: %v", err)
	}
	return int(count), nil
}

func (c *MongoClient) DeleteCollection() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return c.tracks().Drop(ctx)
}
