package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ChannelDetails is the flattened channel payload from the platform API.
type ChannelDetails struct {
	ID              string     `json:"channel_id"`
	Title           string     `json:"title,omitempty"`
	Description     string     `json:"description,omitempty"`
	CustomURL       string     `json:"custom_url,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	Country         string     `json:"country,omitempty"`
	SubscriberCount *int64     `json:"subscriber_count,omitempty"`
	VideoCount      *int64     `json:"video_count,omitempty"`
	ViewCount       *int64     `json:"view_count,omitempty"`
	TopicIDs        []string   `json:"topic_ids,omitempty"`
	ThumbnailURL    string     `json:"thumbnail_url,omitempty"`
	Source          string     `json:"source,omitempty"`
}

// VideoStats is one video's title and counter snapshot.
type VideoStats struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"video_title,omitempty"`
	PublishedAt  string `json:"video_published_at,omitempty"`
	ViewCount    *int64 `json:"view_count,omitempty"`
	LikeCount    *int64 `json:"like_count,omitempty"`
	CommentCount *int64 `json:"comment_count,omitempty"`
	ChannelID    string `json:"channel_id,omitempty"`
	ChannelTitle string `json:"channel_title,omitempty"`
}

// Client is the video-platform API surface consumed by the simulator and the
// refresher. UploadsPlaylistID returns "" when the channel has no uploads
// playlist.
type Client interface {
	ChannelDetails(ctx context.Context, channelIDs []string, sourceTag string) ([]ChannelDetails, error)
	SearchChannels(ctx context.Context, keyword string, topN int) ([]string, error)
	MostPopularChannels(ctx context.Context, pages int) ([]string, error)
	UploadsPlaylistID(ctx context.Context, channelID string) (string, error)
	RecentVideoIDs(ctx context.Context, playlistID string, maxResults int) ([]string, error)
	VideoStats(ctx context.Context, videoIDs []string) ([]VideoStats, error)
	CommentsForVideo(ctx context.Context, videoID string, includeReplies bool, maxTotal int) ([]string, error)
}

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

type HTTPClient struct {
	baseURL    string
	apiKey     string
	region     string
	lang       string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPClient builds a rate-limited Data API client. requestsPerSecond
// guards the API quota; zero falls back to 5 req/s.
func NewHTTPClient(baseURL, apiKey, region, lang string, requestsPerSecond float64) *HTTPClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		region:     region,
		lang:       lang,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

func (c *HTTPClient) doGet(ctx context.Context, resource string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+resource+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("youtube %s: %d %s", resource, resp.StatusCode, string(body))
	}
	return body, nil
}

// --- wire payloads ---

type listResponse struct {
	Items         []json.RawMessage `json:"items"`
	NextPageToken string            `json:"nextPageToken"`
}

type channelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		CustomURL   string `json:"customUrl"`
		PublishedAt string `json:"publishedAt"`
		Country     string `json:"country"`
		Thumbnails  map[string]struct {
			URL string `json:"url"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount string `json:"subscriberCount"`
		VideoCount      string `json:"videoCount"`
		ViewCount       string `json:"viewCount"`
	} `json:"statistics"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
	BrandingSettings struct {
		Channel struct {
			Country string `json:"country"`
		} `json:"channel"`
	} `json:"brandingSettings"`
	TopicDetails struct {
		TopicCategories []string `json:"topicCategories"`
	} `json:"topicDetails"`
}

func (c *HTTPClient) ChannelDetails(ctx context.Context, channelIDs []string, sourceTag string) ([]ChannelDetails, error) {
	var rows []ChannelDetails
	// The channels endpoint accepts at most 50 ids per call.
	for i := 0; i < len(channelIDs); i += 50 {
		end := i + 50
		if end > len(channelIDs) {
			end = len(channelIDs)
		}
		params := url.Values{}
		params.Set("part", "snippet,statistics,brandingSettings,topicDetails")
		params.Set("id", strings.Join(channelIDs[i:end], ","))

		body, err := c.doGet(ctx, "channels", params)
		if err != nil {
			return nil, err
		}
		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		for _, raw := range resp.Items {
			var item channelItem
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}
			rows = append(rows, flattenChannel(item, sourceTag))
		}
	}
	return rows, nil
}

func flattenChannel(item channelItem, sourceTag string) ChannelDetails {
	d := ChannelDetails{
		ID:          item.ID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		CustomURL:   item.Snippet.CustomURL,
		TopicIDs:    item.TopicDetails.TopicCategories,
		Source:      sourceTag,
	}
	d.Country = item.Snippet.Country
	if d.Country == "" {
		d.Country = item.BrandingSettings.Channel.Country
	}
	if ts, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
		d.PublishedAt = &ts
	}
	if thumb, ok := item.Snippet.Thumbnails["high"]; ok {
		d.ThumbnailURL = thumb.URL
	} else if thumb, ok := item.Snippet.Thumbnails["default"]; ok {
		d.ThumbnailURL = thumb.URL
	}
	d.SubscriberCount = parseCount(item.Statistics.SubscriberCount)
	d.VideoCount = parseCount(item.Statistics.VideoCount)
	d.ViewCount = parseCount(item.Statistics.ViewCount)
	return d
}

func parseCount(s string) *int64 {
	if s == "" {
		return nil
	}
	var n int64
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return nil
	}
	return &n
}

type searchItem struct {
	ID struct {
		ChannelID string `json:"channelId"`
	} `json:"id"`
	Snippet struct {
		ChannelID string `json:"channelId"`
	} `json:"snippet"`
}

func (c *HTTPClient) SearchChannels(ctx context.Context, keyword string, topN int) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)
	pageToken := ""

	for len(ids) < topN {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("type", "channel")
		params.Set("q", keyword)
		params.Set("maxResults", "50")
		params.Set("order", "relevance")
		if c.region != "" {
			params.Set("regionCode", c.region)
		}
		if c.lang != "" {
			params.Set("relevanceLanguage", c.lang)
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.doGet(ctx, "search", params)
		if err != nil {
			return nil, err
		}
		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		for _, raw := range resp.Items {
			var item searchItem
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}
			id := item.ID.ChannelID
			if id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
				if len(ids) >= topN {
					break
				}
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return ids, nil
}

func (c *HTTPClient) MostPopularChannels(ctx context.Context, pages int) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	pageToken := ""

	for page := 0; page < pages; page++ {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("chart", "mostPopular")
		params.Set("maxResults", "50")
		if c.region != "" {
			params.Set("regionCode", c.region)
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.doGet(ctx, "videos", params)
		if err != nil {
			return nil, err
		}
		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		for _, raw := range resp.Items {
			var item searchItem
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}
			if id := item.Snippet.ChannelID; id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return ids, nil
}

func (c *HTTPClient) UploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	body, err := c.doGet(ctx, "channels", params)
	if err != nil {
		return "", err
	}
	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	var item channelItem
	if err := json.Unmarshal(resp.Items[0], &item); err != nil {
		return "", err
	}
	return item.ContentDetails.RelatedPlaylists.Uploads, nil
}

type playlistItem struct {
	ContentDetails struct {
		VideoID string `json:"videoId"`
	} `json:"contentDetails"`
}

func (c *HTTPClient) RecentVideoIDs(ctx context.Context, playlistID string, maxResults int) ([]string, error) {
	var videoIDs []string
	pageToken := ""

	for len(videoIDs) < maxResults {
		remaining := maxResults - len(videoIDs)
		if remaining > 50 {
			remaining = 50
		}
		params := url.Values{}
		params.Set("part", "contentDetails")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", fmt.Sprintf("%d", remaining))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.doGet(ctx, "playlistItems", params)
		if err != nil {
			return nil, err
		}
		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		for _, raw := range resp.Items {
			var item playlistItem
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}
			if item.ContentDetails.VideoID != "" {
				videoIDs = append(videoIDs, item.ContentDetails.VideoID)
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return videoIDs, nil
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		PublishedAt string `json:"publishedAt"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
}

func (c *HTTPClient) VideoStats(ctx context.Context, videoIDs []string) ([]VideoStats, error) {
	var rows []VideoStats
	for i := 0; i < len(videoIDs); i += 50 {
		end := i + 50
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		params := url.Values{}
		params.Set("part", "snippet,statistics")
		params.Set("id", strings.Join(videoIDs[i:end], ","))

		body, err := c.doGet(ctx, "videos", params)
		if err != nil {
			return nil, err
		}
		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		for _, raw := range resp.Items {
			var item videoItem
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}
			rows = append(rows, VideoStats{
				VideoID:      item.ID,
				Title:        item.Snippet.Title,
				PublishedAt:  item.Snippet.PublishedAt,
				ViewCount:    parseCount(item.Statistics.ViewCount),
				LikeCount:    parseCount(item.Statistics.LikeCount),
				CommentCount: parseCount(item.Statistics.CommentCount),
			})
		}
	}
	return rows, nil
}

type commentThread struct {
	Snippet struct {
		TopLevelComment struct {
			Snippet struct {
				TextDisplay string `json:"textDisplay"`
			} `json:"snippet"`
		} `json:"topLevelComment"`
	} `json:"snippet"`
	Replies struct {
		Comments []struct {
			Snippet struct {
				TextDisplay string `json:"textDisplay"`
			} `json:"snippet"`
		} `json:"comments"`
	} `json:"replies"`
}

func (c *HTTPClient) CommentsForVideo(ctx context.Context, videoID string, includeReplies bool, maxTotal int) ([]string, error) {
	var texts []string
	fetched := 0
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("part", "snippet,replies")
		params.Set("videoId", videoID)
		params.Set("maxResults", "100")
		params.Set("textFormat", "plainText")
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.doGet(ctx, "commentThreads", params)
		if err != nil {
			return nil, err
		}
		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		for _, raw := range resp.Items {
			var thread commentThread
			if err := json.Unmarshal(raw, &thread); err != nil {
				continue
			}
			if text := thread.Snippet.TopLevelComment.Snippet.TextDisplay; text != "" {
				texts = append(texts, text)
			}
			fetched++
			if includeReplies {
				for _, reply := range thread.Replies.Comments {
					if reply.Snippet.TextDisplay != "" {
						texts = append(texts, reply.Snippet.TextDisplay)
					}
					fetched++
				}
			}
			if fetched >= maxTotal {
				break
			}
		}
		if fetched >= maxTotal {
			break
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return texts, nil
}
