package export

// ChunkLines joins lines with newlines into chunks that stay within budget
// characters. Lines are never split: a chunk is flushed when adding the next
// line would exceed the budget, and a single line longer than the budget
// becomes a chunk of its own. Joining the chunks back with newlines restores
// the input exactly.
func ChunkLines(lines []string, budget int) []string {
	var chunks []string
	var buf []byte
	size := 0

	for _, line := range lines {
		addLen := len(line) + 1
		if size+addLen > budget && size > 0 {
			chunks = append(chunks, string(buf))
			buf = buf[:0]
			size = 0
		}

		if size > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, line...)
		size += addLen
	}

	if size > 0 {
		chunks = append(chunks, string(buf))
	}

	return chunks
}
