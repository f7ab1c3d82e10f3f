//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Confidence is the ordinal NSFW confidence bucket derived from the heuristic score
// ENUM(none,low,medium,high)
type Confidence string

// ChannelSource records how an owned channel was discovered
// ENUM(profile,common_chats)
type ChannelSource string
