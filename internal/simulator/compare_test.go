package simulator

import (
	"context"
	"errors"
	"testing"

	"github.com/sponsorscope/sponsorscope/internal/scoring"
)

func TestCompareWeightsSingleAnalysisPass(t *testing.T) {
	s, yt, brand, sent := happyMocks()
	sim := newTestSimulator(s, yt, brand, sent)

	req := CompareRequest{
		Request: Request{ChannelID: "UCtest", BrandName: "Acme"},
		WeightConfigs: []scoring.WeightConfig{
			{Brand: 0.3, Sentiment: 0.3, ROI: 0.4},
			{Brand: 0.5, Sentiment: 0.3, ROI: 0.2},
			{Brand: 0.1, Sentiment: 0.1, ROI: 0.8},
		},
	}
	res, err := sim.CompareWeights(context.Background(), req)
	if err != nil {
		t.Fatalf("CompareWeights: %v", err)
	}
	if brand.calls != 1 {
		t.Errorf("brand analyzer called %d times, want 1", brand.calls)
	}
	if sent.calls != 1 {
		t.Errorf("sentiment classifier called %d times, want 1", sent.calls)
	}
	if len(res.Comparisons) != 3 {
		t.Fatalf("got %d comparisons, want 3", len(res.Comparisons))
	}
	// Sub-scores: brand 80, sentiment 80, roi 0.
	wantTotals := []float64{48, 64, 16}
	for i, want := range wantTotals {
		if res.Comparisons[i].TotalScore != want {
			t.Errorf("comparisons[%d] = %v, want %v", i, res.Comparisons[i].TotalScore, want)
		}
		if res.Comparisons[i].Error != "" {
			t.Errorf("comparisons[%d] unexpected error %q", i, res.Comparisons[i].Error)
		}
	}
}

func TestCompareWeightsInvalidLaterEntry(t *testing.T) {
	s, yt, brand, sent := happyMocks()
	sim := newTestSimulator(s, yt, brand, sent)

	req := CompareRequest{
		Request: Request{ChannelID: "UCtest", BrandName: "Acme"},
		WeightConfigs: []scoring.WeightConfig{
			{Brand: 0.3, Sentiment: 0.3, ROI: 0.4},
			{Brand: 0.9, Sentiment: 0.9, ROI: 0.9},
		},
	}
	res, err := sim.CompareWeights(context.Background(), req)
	if err != nil {
		t.Fatalf("CompareWeights: %v", err)
	}
	if res.Comparisons[0].Error != "" {
		t.Errorf("valid entry got error %q", res.Comparisons[0].Error)
	}
	if res.Comparisons[1].Error == "" {
		t.Error("invalid entry did not record an error")
	}
	if res.Comparisons[1].TotalScore != 0 || res.Comparisons[1].Grade != "" {
		t.Errorf("invalid entry should carry no scores: %+v", res.Comparisons[1])
	}
}

func TestCompareWeightsInvalidFirstEntryFatal(t *testing.T) {
	s, yt, brand, sent := happyMocks()
	sim := newTestSimulator(s, yt, brand, sent)

	req := CompareRequest{
		Request: Request{ChannelID: "UCtest", BrandName: "Acme"},
		WeightConfigs: []scoring.WeightConfig{
			{Brand: 0.9, Sentiment: 0.9, ROI: 0.9},
			{Brand: 0.3, Sentiment: 0.3, ROI: 0.4},
		},
	}
	_, err := sim.CompareWeights(context.Background(), req)
	if !errors.Is(err, scoring.ErrInvalidWeights) {
		t.Errorf("err = %v, want ErrInvalidWeights", err)
	}
	if brand.calls != 0 {
		t.Error("analysis ran despite invalid base configuration")
	}
}

func TestCompareWeightsEmptyConfigs(t *testing.T) {
	s, yt, brand, sent := happyMocks()
	sim := newTestSimulator(s, yt, brand, sent)

	_, err := sim.CompareWeights(context.Background(), CompareRequest{
		Request: Request{ChannelID: "UCtest", BrandName: "Acme"},
	})
	if !errors.Is(err, scoring.ErrInvalidWeights) {
		t.Errorf("err = %v, want ErrInvalidWeights", err)
	}
}
