package handlers

// AppHandlers holds all application handlers.
type AppHandlers struct {
	FeedHandler  *FeedHandler
	MatchHandler *MatchHandler
	ChatHandler  *ChatHandler
}
