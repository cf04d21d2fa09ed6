/*
Package server implements msgpack IPC for the completion engine.

Clients write msgpack maps to stdin and read msgpack maps from stdout; logs
go to stderr. Requests are handled one at a time in arrival order, so adds
and removes never interleave with a query. Once started the server writes a
StatusMessage{"status": "ready"} before reading.

# Messages

A completion request carries a prefix, an optional limit and fuzzy flag:

	{"id": "req_001", "p": "the qu", "l": 5, "f": true}

and is answered with suggestions ranked best first:

	{"id": "req_001", "s": [{"w": "the quick", "r": 1, "f": 3}], "c": 1, "t": 85}

The prefix may hold several words; only the last two are completed and the
rest are kept as typed. "t" is the time spent in microseconds.

Index requests feed text into the engine:

	{"id": "idx_001", "action": "add", "t": "the quick brown fox"}
	{"id": "idx_002", "action": "remove", "t": "the quick brown fox"}

Stats requests report on the index:

	{"id": "st_001", "action": "stats"}
	{"id": "st_002", "action": "top", "l": 10}

Failures are answered with a CompletionError carrying an HTTP-like code.
*/
package server

// CompletionRequest - minimal completion request
type CompletionRequest struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
	Fuzzy  bool   `msgpack:"f,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word      string `msgpack:"w"`
	Rank      uint16 `msgpack:"r"`
	Frequency int    `msgpack:"f"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// IndexRequest adds or removes the tokens of a text
type IndexRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"` // "add", "remove"
	Text   string `msgpack:"t"`
}

// IndexResponse - index operation response
type IndexResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Tokens int    `msgpack:"tokens"` // distinct tokens after the operation
}

// StatsRequest asks for index statistics or the most common tokens
type StatsRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"` // "stats", "top"
	Limit  int    `msgpack:"l,omitempty"`
}

// StatsResponse - stats operation response
type StatsResponse struct {
	ID    string                 `msgpack:"id"`
	Stats map[string]int         `msgpack:"stats,omitempty"`
	Top   []CompletionSuggestion `msgpack:"top,omitempty"`
}

// StatusMessage is sent once the server is ready to read requests
type StatusMessage struct {
	Status string `msgpack:"status"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// envelope is decoded first to route a request by its action.
type envelope struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
}
