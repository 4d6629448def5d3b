package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"microposts/pkg/client"
	"microposts/pkg/config"
	"microposts/pkg/logger"

	"github.com/brianvoe/gofakeit/v7"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	var (
		apiURL = flag.String("api", cfg.APIURL, "base URL of the running API")
		mode   = flag.String("mode", "tumblog", "what to seed: tumblog or twitter")
		posts  = flag.Int("posts", 10, "number of posts to create (tumblog)")
		tweets = flag.Int("tweets", 20, "number of tweets to create (twitter)")
	)
	flag.Parse()

	log := logger.New()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c := client.New(*apiURL)

	switch *mode {
	case "tumblog":
		err = seedPosts(ctx, client.NewPostFeed(c, log), *posts, log)
	case "twitter":
		err = seedTweets(ctx, client.NewTweetFeed(c, log), *tweets, log)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error("Failed to seed %s: %v", *mode, err)
		panic(err)
	}

	log.Info("Seeded %s at %s", *mode, *apiURL)
}

func randomDraft() client.PostDraft {
	postType := gofakeit.RandomString([]string{"text", "photo", "gif", "link"})
	tags := make([]string, gofakeit.Number(0, 3))
	for i := range tags {
		tags[i] = strings.ToLower(gofakeit.Noun())
	}

	draft := client.PostDraft{
		Type: postType,
		Tags: strings.Join(tags, ", "),
	}
	if postType == "text" {
		draft.Content = gofakeit.Phrase()
	} else {
		draft.URL = gofakeit.URL()
		if gofakeit.Bool() {
			draft.Content = fmt.Sprintf("%s %s", gofakeit.Adjective(), gofakeit.Noun())
		}
	}
	return draft
}

func seedPosts(ctx context.Context, feed *client.PostFeed, count int, log *logger.Logger) error {
	if err := feed.Refresh(ctx); err != nil {
		return err
	}
	log.Info("Feed has %d posts before seeding", len(feed.Items()))

	for i := 0; i < count; i++ {
		if err := feed.Submit(ctx, randomDraft()); err != nil {
			return fmt.Errorf("post %d: %w", i+1, err)
		}

		items := feed.Items()
		if len(items) > 0 && gofakeit.Bool() {
			target := items[gofakeit.Number(0, len(items)-1)]
			comment := fmt.Sprintf("%s! I like %s.", gofakeit.Interjection(), gofakeit.Hobby())
			if err := feed.Comment(ctx, target.ID, comment); err != nil {
				return fmt.Errorf("comment on %s: %w", target.ID, err)
			}
		}
	}

	items := feed.Items()
	log.Info("Feed has %d posts after seeding", len(items))
	if len(items) > 0 {
		log.Info("Newest post: %s %q (%d comments)", items[0].Type, items[0].Content, len(items[0].Comments))
	}
	return nil
}

func seedTweets(ctx context.Context, feed *client.TweetFeed, count int, log *logger.Logger) error {
	if err := feed.Refresh(ctx); err != nil {
		return err
	}
	log.Info("Feed has %d tweets before seeding", len(feed.Items()))

	for i := 0; i < count; i++ {
		content := gofakeit.Phrase()
		if gofakeit.Bool() {
			content = fmt.Sprintf("%s #%s", content, strings.ToLower(gofakeit.Noun()))
		}
		if len([]rune(content)) > 280 {
			content = string([]rune(content)[:280])
		}
		if err := feed.Submit(ctx, content); err != nil {
			return fmt.Errorf("tweet %d: %w", i+1, err)
		}
	}

	log.Info("Feed has %d tweets after seeding", len(feed.Items()))
	return nil
}
