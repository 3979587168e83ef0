package gitlabmanager

import "io"

// ProgressFunc receives upload progress. It is called after every chunk with
// the bytes transferred so far and the total size in bytes.
type ProgressFunc func(uploaded, total int64)

// progressReader reports read progress through a callback as the underlying
// client consumes the upload body.
type progressReader struct {
	r        io.Reader
	total    int64
	uploaded int64
	fn       ProgressFunc
}

func newProgressReader(r io.Reader, total int64, fn ProgressFunc) io.Reader {
	if fn == nil {
		return r
	}
	return &progressReader{r: r, total: total, fn: fn}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.uploaded += int64(n)
		p.fn(p.uploaded, p.total)
	}
	return n, err
}
