package model

// Listing is the result of a shallow (depth 1) directory query. Names keep
// the order they appeared in the multi-status response. A Listing is never
// cached; every visit to a remote directory recomputes it.
type Listing struct {
	Files []string
	Dirs  []string
}

// Empty reports whether the listing contains no entries at all.
func (l Listing) Empty() bool {
	return len(l.Files) == 0 && len(l.Dirs) == 0
}

// RemoteInfo describes a single remote file as reported by a depth 0 probe.
// Size is nil when the server did not report a content length. A nil
// *RemoteInfo means the file does not exist (or the probe failed — the two
// are not distinguished, matching the sync policy's treatment of both as
// "upload it as new").
type RemoteInfo struct {
	Size     *int64
	Modified string
}
