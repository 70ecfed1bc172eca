package main

import (
	"context"
	"log"
	"os"

	"musicsync/archive"
	"musicsync/catalog"
	"musicsync/config"
	"musicsync/fetch"
	"musicsync/pipeline"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Printf("musicsync: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := catalog.NewClient(ctx, cfg.GoogleAPIKey)
	if err != nil {
		return err
	}

	fetcher := fetch.NewFetcher()
	fetcher.Path = cfg.YtdlpPath
	fetcher.CookiesFile = cfg.CookiesFile
	fetcher.Timeout = cfg.FetchTimeout

	artifacts, err := archive.NewS3Store(ctx, archive.S3Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		PublicHost:      cfg.PublicHost,
	})
	if err != nil {
		return err
	}

	index, err := archive.NewMongoIndex(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer func() {
		if err := index.Close(ctx); err != nil {
			log.Printf("musicsync: close document store: %v", err)
		}
	}()

	if err := index.EnsureIndexes(ctx); err != nil {
		return err
	}

	checkpoint, err := archive.NewFileCheckpoint(cfg.CheckpointPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := checkpoint.Close(); err != nil {
			log.Printf("musicsync: close checkpoint: %v", err)
		}
	}()

	syncer := pipeline.New(client, fetcher, artifacts, index, checkpoint, cfg.WorkDir)
	return syncer.Run(ctx, cfg.ChannelID)
}
