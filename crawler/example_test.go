package crawler_test

import (
	"context"
	"fmt"

	"github.com/nao1215/hoccrawler/crawler"
)

func ExampleCrawl() {
	// A pipe that is fine under at most 10 units of fill.
	check := crawler.ValidatorFunc(func(_ context.Context, c crawler.Candidate) error {
		if c.H.Magnitude() > 10 {
			return crawler.ErrInvalidCandidate
		}
		return nil
	})

	h, err := crawler.Crawl(context.Background(), check, crawler.Max, crawler.WithRangeArgs(2, 20))
	if err != nil {
		panic(err)
	}
	fmt.Println(h)
	// Output: 10
}
