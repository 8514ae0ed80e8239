package video

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/ytget/yt-downloader-web/internal/model"
)

// Tier policy names accepted by NewTierPolicy
const (
	PolicyLadder   = "ladder"
	PolicyBucketed = "bucketed"
)

// Format selectors and tier ids shared by the resolver and the downloader
const (
	GenericFormat       = "bestvideo+bestaudio/best"
	BestAvailableFormat = "bestvideo*+bestaudio/best"
	AudioOnlyFormat     = "bestaudio[ext=m4a]/bestaudio/best"

	BestAvailableID = "best"
	AudioOnlyID     = "audio"

	BestAvailableLabel = "Best Available"
	AudioOnlyLabel     = "Audio only"
	FallbackLabel      = "Best available"
)

// Container extensions
const (
	ExtMKV = "mkv"
	ExtMP4 = "mp4"
	ExtM4A = "m4a"
)

// MaxBucketedTiers caps the bucketed policy output
const MaxBucketedTiers = 12

// LadderHeights is the fixed descending resolution ladder
var LadderHeights = []int{2160, 1440, 1080, 720, 480, 360}

// genericNotes are engine format notes that add nothing to a label
var genericNotes = []string{"dash video", "dash audio", "default"}

// TierPolicy derives the quality choices offered for one metadata response.
// Implementations never return an empty list.
type TierPolicy interface {
	Name() string
	Resolve(meta *model.VideoMetadata) []model.QualityTier
}

// NewTierPolicy returns the policy registered under name
func NewTierPolicy(name string) (TierPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyLadder:
		return LadderPolicy{}, nil
	case PolicyBucketed:
		return BucketedPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown tier policy %q (valid: %s, %s)", name, PolicyLadder, PolicyBucketed)
	}
}

// LadderPolicy offers Best Available, every ladder rung some video stream can
// satisfy, and Audio only, in that order.
type LadderPolicy struct{}

func (LadderPolicy) Name() string { return PolicyLadder }

func (LadderPolicy) Resolve(meta *model.VideoMetadata) []model.QualityTier {
	var formats []model.StreamDescriptor
	if meta != nil {
		formats = meta.Formats
	}

	heights := lo.FilterMap(formats, func(d model.StreamDescriptor, _ int) (int, bool) {
		return d.Height, d.HasVideo() && d.Height > 0
	})
	maxHeight := lo.Max(heights)

	tiers := []model.QualityTier{BestAvailableTier()}
	for _, rung := range LadderHeights {
		if maxHeight >= rung {
			tiers = append(tiers, HeightTier(rung))
		}
	}
	return append(tiers, AudioOnlyTier())
}

// BestAvailableTier merges the best video and audio into a container that
// accepts any codec pair
func BestAvailableTier() model.QualityTier {
	return model.QualityTier{
		ID:     BestAvailableID,
		Label:  BestAvailableLabel,
		Ext:    ExtMKV,
		Format: BestAvailableFormat,
	}
}

// HeightTier is bounded to height and forces an mp4-compatible merge
func HeightTier(height int) model.QualityTier {
	id := strconv.Itoa(height) + "p"
	return model.QualityTier{
		ID:     id,
		Label:  id,
		Ext:    ExtMP4,
		Format: HeightFormat(height),
	}
}

// HeightFormat builds the selector for a tier bounded to height
func HeightFormat(height int) string {
	return fmt.Sprintf(
		"bestvideo[height<=%[1]d][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=%[1]d]+bestaudio/best[height<=%[1]d]",
		height,
	)
}

// AudioOnlyTier selects a single audio stream, no merge
func AudioOnlyTier() model.QualityTier {
	return model.QualityTier{
		ID:     AudioOnlyID,
		Label:  AudioOnlyLabel,
		Ext:    ExtM4A,
		Format: AudioOnlyFormat,
	}
}

// LookupTier resolves a ladder tier id without any metadata
func LookupTier(id string) (model.QualityTier, bool) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case BestAvailableID:
		return BestAvailableTier(), true
	case AudioOnlyID:
		return AudioOnlyTier(), true
	}
	height, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(id)), "p"))
	if err != nil || !slices.Contains(LadderHeights, height) {
		return model.QualityTier{}, false
	}
	return HeightTier(height), true
}

// IsAudioOnlyFormat reports whether selector picks a single audio stream
func IsAudioOnlyFormat(selector string) bool {
	return strings.HasPrefix(selector, "bestaudio") && !strings.Contains(selector, "+")
}

// BucketedPolicy keeps the highest-bitrate progressive stream per
// (height, fps, dynamic range, ext, language) bucket
type BucketedPolicy struct{}

func (BucketedPolicy) Name() string { return PolicyBucketed }

type bucketKey struct {
	height       int
	fps          int
	dynamicRange string
	ext          string
	language     string
}

func keyOf(d model.StreamDescriptor) bucketKey {
	return bucketKey{
		height:       d.Height,
		fps:          int(d.FPS),
		dynamicRange: d.DynamicRange,
		ext:          d.Ext,
		language:     languageCode(d.Language),
	}
}

func (BucketedPolicy) Resolve(meta *model.VideoMetadata) []model.QualityTier {
	if meta == nil {
		meta = &model.VideoMetadata{}
	}

	progressive := lo.Filter(meta.Formats, func(d model.StreamDescriptor, _ int) bool {
		return d.HasVideo() && d.HasAudio() && d.FormatID != ""
	})

	// first-seen order keeps ties deterministic after the stable sort
	groups := lo.GroupBy(progressive, keyOf)
	survivors := lo.Map(lo.UniqBy(progressive, keyOf), func(first model.StreamDescriptor, _ int) model.StreamDescriptor {
		return lo.MaxBy(groups[keyOf(first)], func(a, b model.StreamDescriptor) bool {
			return a.TBR > b.TBR
		})
	})

	sort.SliceStable(survivors, func(i, j int) bool {
		a, b := survivors[i], survivors[j]
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		if a.FPS != b.FPS {
			return a.FPS > b.FPS
		}
		return a.TBR > b.TBR
	})

	if len(survivors) > MaxBucketedTiers {
		survivors = survivors[:MaxBucketedTiers]
	}

	tiers := lo.Map(survivors, func(d model.StreamDescriptor, _ int) model.QualityTier {
		return model.QualityTier{
			ID:       d.FormatID,
			Label:    DescribeFormat(d),
			Ext:      lo.CoalesceOrEmpty(d.Ext, meta.Ext, ExtMP4),
			Format:   d.FormatID,
			Language: languageCode(d.Language),
		}
	})

	if len(tiers) == 0 {
		selector := lo.CoalesceOrEmpty(meta.FormatID, GenericFormat)
		tiers = append(tiers, model.QualityTier{
			ID:     selector,
			Label:  FallbackLabel,
			Ext:    lo.CoalesceOrEmpty(meta.Ext, ExtMP4),
			Format: selector,
		})
	}
	return tiers
}

// DescribeFormat builds a label like "1080p60 • Premium • mp4 • 3.5 Mbps"
func DescribeFormat(d model.StreamDescriptor) string {
	var resolution string
	if d.Height > 0 {
		resolution = fmt.Sprintf("%dp", d.Height)
		if d.FPS > 0 {
			resolution += strconv.Itoa(int(d.FPS))
		}
	} else {
		resolution = lo.CoalesceOrEmpty(d.Resolution, "Video")
	}

	parts := []string{strings.TrimSpace(resolution)}
	if d.FormatNote != "" && !slices.Contains(genericNotes, strings.ToLower(d.FormatNote)) {
		parts = append(parts, d.FormatNote)
	}
	if d.Ext != "" {
		parts = append(parts, d.Ext)
	}
	if d.TBR > 0 {
		parts = append(parts, fmt.Sprintf("%.1f Mbps", math.Round(d.TBR/100)/10))
	}

	label := strings.Join(lo.Compact(parts), " • ")
	if label == "" {
		return lo.CoalesceOrEmpty(d.FormatID, "unknown")
	}
	return label
}
