/*
Package github is the data layer for browsing GitHub repositories.

	            +-------------+
	            |   Client    |
	            | (REST API)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+--------+        +----+------+
	| ContentCache |        |   Error   |
	| (TTL spaces) |        | (taxonomy)|
	+--------------+        +-----------+

🎯 Purpose:
- Fetches repository metadata, recursive trees, contents and blobs
- Parses rate-limit headers into snapshots on every exchange
- Classifies every failure into a typed, user-presentable taxonomy
- Caches responses per key space with differentiated TTLs

🔄 Flow:
1. Caller asks for a tree, file or blob
2. The cache is consulted; a hit returns with the last-known quota
3. On a miss one HTTP call is made and classified on failure
4. Payloads are decoded, sniffed for binary content, and cached

⚡ Key Responsibilities:
- Single authenticated request primitive shared by all operations
- Tree flattening (blob→file, tree→directory, name derivation)
- Base64 decoding that falls back to a binary verdict, never an error
- Cross-space coupling: a path write also populates the blob space

🤝 Interfaces:
- Client: the API operations, each returning (data, RateLimit, error)
- ContentCache: four TTL key spaces with scoped invalidation
- DedupClient: optional singleflight coalescing of identical fetches
- Error: kind, retryability and user messaging for any failure

📝 Design Philosophy:
The client performs no retries and imposes no timeouts: retry is a caller
decision driven by IsRetryable, and latency bounds belong to the caller's
context. An abandoned call may still complete and populate the cache —
that work is deliberately not wasted.
*/
package github
