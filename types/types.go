package types

// Wire shapes for app.bsky.feed.getFeed responses. Only the fields the live
// feed importer reads are kept.

// FeedResponse represents the root structure of the API response.
type FeedResponse struct {
	Cursor string      `json:"cursor"`
	Feed   []FeedEntry `json:"feed"`
}

type FeedEntry struct {
	Post Post `json:"post"`
}

type Post struct {
	Author      Author `json:"author"`
	CID         string `json:"cid"`
	IndexedAt   string `json:"indexedAt"`
	LikeCount   int    `json:"likeCount"`
	QuoteCount  int    `json:"quoteCount"`
	Record      Record `json:"record"`
	ReplyCount  int    `json:"replyCount"`
	RepostCount int    `json:"repostCount"`
	URI         string `json:"uri"`
}

type Author struct {
	DID         string  `json:"did"`
	DisplayName string  `json:"displayName"`
	Handle      string  `json:"handle"`
	Labels      []Label `json:"labels,omitempty"`
}

// Label is a moderation or classification label attached to an author.
type Label struct {
	Src string `json:"src"`
	URI string `json:"uri"`
	Val string `json:"val"`
}

// Record represents the content of a post.
type Record struct {
	Type      string   `json:"$type"`
	CreatedAt string   `json:"createdAt"`
	Langs     []string `json:"langs"`
	Text      string   `json:"text"`
}
