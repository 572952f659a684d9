package tokstore

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var httpCacheBucket = []byte("http_cache")

// CacheGet fetches u over HTTP, keeping the response in the bolt store for
// refresh. On fetch errors a stale cached copy is returned when available.
func (s *Store) CacheGet(ctx context.Context, u string, timeout, refresh time.Duration) ([]byte, error) {
	cacheKey := sha256.Sum256([]byte(u))

	// check if in cache
	cachebuf, err := s.SimpleGet(httpCacheBucket, cacheKey[:])
	if err == nil && len(cachebuf) >= 8 {
		cacheTime := time.Unix(int64(binary.BigEndian.Uint64(cachebuf[:8])), 0)
		if time.Since(cacheTime) <= refresh {
			// still fresh enough
			return cachebuf[8:], nil
		}
	} else {
		cachebuf = nil
	}

	if timeout > 0 {
		var cancel func()
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		if cachebuf != nil {
			return cachebuf[8:], nil
		}
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		if cachebuf != nil {
			return cachebuf[8:], nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		if cachebuf != nil {
			return cachebuf[8:], nil
		}
		return nil, err
	}

	if resp.StatusCode >= 300 {
		if cachebuf != nil {
			return cachebuf[8:], nil
		}
		if len(buf) > 512 {
			buf = buf[:512]
		}
		return nil, fmt.Errorf("HTTP status %s on GET: %s", resp.Status, buf)
	}

	// current timestamp
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(time.Now().Unix()))

	// save in cache (ignore errors)
	s.SimpleSet(httpCacheBucket, cacheKey[:], append(ts, buf...))

	return buf, nil
}

// https://ws.atonline.com/_special/rest/Crypto/DataCache:ccInfo?key_type=symbol&key=MATIC&pretty
type CoinInfo struct {
	Id        int                 `json:"id"`
	Name      string              `json:"name"`
	Symbol    string              `json:"symbol"`
	Category  string              `json:"category"`
	Logo      string              `json:"logo"` // data:image/png;base64,...
	Subreddit string              `json:"subreddit"`
	Notice    string              `json:"notice"`
	URLs      map[string][]string `json:"urls"`
	Twitter   string              `json:"twitter_username"`
}

type coinInfoApiResponse struct {
	Result string    `json:"result"` // "success"
	Data   *CoinInfo `json:"data"`
}

// CoinInfoBySymbol returns public information (logo, links, category) for
// the coin with the given symbol.
func (s *Store) CoinInfoBySymbol(ctx context.Context, symbol string) (*CoinInfo, error) {
	u := "https://ws.atonline.com/_special/rest/Crypto/DataCache:ccInfo?key_type=symbol&key=" + url.QueryEscape(symbol)
	return s.coinInfoByUrl(ctx, u)
}

// CoinInfoByAddress returns public information for the coin with the given
// contract address.
func (s *Store) CoinInfoByAddress(ctx context.Context, addr string) (*CoinInfo, error) {
	u := "https://ws.atonline.com/_special/rest/Crypto/DataCache:ccInfo?key_type=address&key=" + url.QueryEscape(addr)
	return s.coinInfoByUrl(ctx, u)
}

func (s *Store) coinInfoByUrl(ctx context.Context, u string) (*CoinInfo, error) {
	buf, err := s.CacheGet(ctx, u, 10*time.Second, 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	var ci coinInfoApiResponse
	if err = json.Unmarshal(buf, &ci); err != nil {
		return nil, err
	}
	return ci.Data, nil
}
