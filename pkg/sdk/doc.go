// Package docsearch provides an embedded Go client for the document
// relevance ranking engine backed by Redis.
//
// The client talks to storage directly, wiring the same ranking pipeline the
// HTTP server uses: keyword field scoring with Vietnamese diacritic folding,
// popularity boosting, and optional embedding-based semantic search.
//
//	client, err := docsearch.New(ctx, docsearch.WithRedis("localhost:6379", ""))
//	if err != nil { ... }
//	defer client.Close()
//
//	_, _ = client.Documents().Upsert(ctx, docsearch.Document{
//	    ID:         "doc-1",
//	    Title:      "Giải tích 1",
//	    CategoryID: "cat-math",
//	})
//
//	page, _ := client.Search(ctx, docsearch.SearchParams{Query: "giải tích"})
package docsearch
