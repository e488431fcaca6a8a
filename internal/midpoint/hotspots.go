// Agora - Group Meetup Planning and Recommendation Engine
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agoraplan/agora

package midpoint

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/agoraplan/agora/internal/geo"
	"github.com/agoraplan/agora/internal/models"
)

// defaultRegionName is used when there are too few participants to
// compute a meaningful midpoint. Seoul Station is the city's main
// interchange and reachable from every line in the catalogue.
const defaultRegionName = "Seoul Station"

// hotspots is the fixed catalogue of metropolitan-area transit hubs
// considered as meeting regions. Coordinates are station exits, not
// platform centers.
var hotspots = []models.Hotspot{
	{Name: "Gangnam", Location: models.Location{Lat: 37.498085, Lng: 127.027621}, Lines: []string{"2", "Sinbundang"}},
	{Name: "Sinnonhyeon", Location: models.Location{Lat: 37.504598, Lng: 127.025060}, Lines: []string{"9", "Sinbundang"}},
	{Name: "Yeoksam", Location: models.Location{Lat: 37.500622, Lng: 127.036456}, Lines: []string{"2"}},
	{Name: "Samseong (COEX)", Location: models.Location{Lat: 37.508823, Lng: 127.063166}, Lines: []string{"2"}},
	{Name: "Jamsil", Location: models.Location{Lat: 37.513261, Lng: 127.100131}, Lines: []string{"2", "8"}},
	{Name: "Express Bus Terminal", Location: models.Location{Lat: 37.504914, Lng: 127.004915}, Lines: []string{"3", "7", "9"}},
	{Name: "Gyodae", Location: models.Location{Lat: 37.493415, Lng: 127.014080}, Lines: []string{"2", "3"}},
	{Name: "Yangjae", Location: models.Location{Lat: 37.484147, Lng: 127.034631}, Lines: []string{"3", "Sinbundang"}},
	{Name: "Sadang", Location: models.Location{Lat: 37.476553, Lng: 126.981550}, Lines: []string{"2", "4"}},
	{Name: "Cheonho", Location: models.Location{Lat: 37.538640, Lng: 127.123626}, Lines: []string{"5", "8"}},
	{Name: "Hongdae", Location: models.Location{Lat: 37.557527, Lng: 126.924467}, Lines: []string{"2", "Airport", "Gyeongui-Jungang"}},
	{Name: "Hapjeong", Location: models.Location{Lat: 37.548929, Lng: 126.916630}, Lines: []string{"2", "6"}},
	{Name: "Sinchon", Location: models.Location{Lat: 37.555134, Lng: 126.936893}, Lines: []string{"2"}},
	{Name: "Yeonnam-dong", Location: models.Location{Lat: 37.568473, Lng: 126.915503}, Lines: []string{"Gyeongui-Jungang"}},
	{Name: "Yeouido", Location: models.Location{Lat: 37.521569, Lng: 126.924311}, Lines: []string{"5", "9"}},
	{Name: "Yeongdeungpo", Location: models.Location{Lat: 37.515504, Lng: 126.907628}, Lines: []string{"1"}},
	{Name: "Sindorim", Location: models.Location{Lat: 37.508901, Lng: 126.891347}, Lines: []string{"1", "2"}},
	{Name: "Guro Digital Complex", Location: models.Location{Lat: 37.485250, Lng: 126.901472}, Lines: []string{"2"}},
	{Name: "Magoknaru", Location: models.Location{Lat: 37.566774, Lng: 126.827271}, Lines: []string{"9", "Airport"}},
	{Name: "Dangsan", Location: models.Location{Lat: 37.534380, Lng: 126.902281}, Lines: []string{"2", "9"}},
	{Name: "Seoul Station", Location: models.Location{Lat: 37.555946, Lng: 126.972317}, Lines: []string{"1", "4", "Airport", "KTX"}},
	{Name: "Yongsan", Location: models.Location{Lat: 37.529849, Lng: 126.964561}, Lines: []string{"1", "Gyeongui-Jungang"}},
	{Name: "Itaewon", Location: models.Location{Lat: 37.534533, Lng: 126.994367}, Lines: []string{"6"}},
	{Name: "Hannam", Location: models.Location{Lat: 37.529430, Lng: 127.009226}, Lines: []string{"Gyeongui-Jungang"}},
	{Name: "Jongno 3-ga", Location: models.Location{Lat: 37.571607, Lng: 126.991806}, Lines: []string{"1", "3", "5"}},
	{Name: "Euljiro 3-ga", Location: models.Location{Lat: 37.566295, Lng: 126.992670}, Lines: []string{"2", "3"}},
	{Name: "Gwanghwamun", Location: models.Location{Lat: 37.571005, Lng: 126.976883}, Lines: []string{"5"}},
	{Name: "Myeongdong", Location: models.Location{Lat: 37.560997, Lng: 126.986325}, Lines: []string{"4"}},
	{Name: "Hyehwa", Location: models.Location{Lat: 37.582193, Lng: 127.001915}, Lines: []string{"4"}},
	{Name: "Dongdaemun", Location: models.Location{Lat: 37.571420, Lng: 127.009745}, Lines: []string{"1", "4"}},
	{Name: "Wangsimni", Location: models.Location{Lat: 37.561268, Lng: 127.037103}, Lines: []string{"2", "5", "Suin-Bundang"}},
	{Name: "Seongsu", Location: models.Location{Lat: 37.544581, Lng: 127.056035}, Lines: []string{"2"}},
	{Name: "Konkuk Univ.", Location: models.Location{Lat: 37.540693, Lng: 127.070230}, Lines: []string{"2", "7"}},
	{Name: "Cheongnyangni", Location: models.Location{Lat: 37.580178, Lng: 127.048547}, Lines: []string{"1", "Gyeongui-Jungang"}},
	{Name: "Nowon", Location: models.Location{Lat: 37.655128, Lng: 127.061368}, Lines: []string{"4", "7"}},
	{Name: "Changdong", Location: models.Location{Lat: 37.653166, Lng: 127.047731}, Lines: []string{"1", "4"}},
	{Name: "Pangyo", Location: models.Location{Lat: 37.394761, Lng: 127.111217}, Lines: []string{"Sinbundang", "Gyeonggang"}},
	{Name: "Seohyeon", Location: models.Location{Lat: 37.383052, Lng: 127.121750}, Lines: []string{"Suin-Bundang"}},
	{Name: "Jeongja", Location: models.Location{Lat: 37.367060, Lng: 127.108068}, Lines: []string{"Sinbundang", "Suin-Bundang"}},
	{Name: "Yatap", Location: models.Location{Lat: 37.412505, Lng: 127.128661}, Lines: []string{"Suin-Bundang"}},
	{Name: "Moran", Location: models.Location{Lat: 37.432130, Lng: 127.129087}, Lines: []string{"8", "Suin-Bundang"}},
	{Name: "Suwon Station", Location: models.Location{Lat: 37.265637, Lng: 127.000029}, Lines: []string{"1", "Suin-Bundang", "KTX"}},
	{Name: "Gwanggyo Jungang", Location: models.Location{Lat: 37.288617, Lng: 127.052062}, Lines: []string{"Sinbundang"}},
	{Name: "Jukjeon", Location: models.Location{Lat: 37.324750, Lng: 127.107396}, Lines: []string{"Suin-Bundang"}},
	{Name: "Dongtan", Location: models.Location{Lat: 37.199494, Lng: 127.096632}, Lines: []string{"SRT", "GTX"}},
	{Name: "Anyang", Location: models.Location{Lat: 37.401621, Lng: 126.922848}, Lines: []string{"1"}},
	{Name: "Beomgye", Location: models.Location{Lat: 37.389788, Lng: 126.950767}, Lines: []string{"4"}},
	{Name: "Indeogwon", Location: models.Location{Lat: 37.401184, Lng: 126.976546}, Lines: []string{"4"}},
	{Name: "Bucheon", Location: models.Location{Lat: 37.484074, Lng: 126.782682}, Lines: []string{"1"}},
	{Name: "Bupyeong", Location: models.Location{Lat: 37.489521, Lng: 126.724540}, Lines: []string{"1", "Incheon1"}},
	{Name: "Songdo", Location: models.Location{Lat: 37.386647, Lng: 126.639283}, Lines: []string{"Incheon1"}},
	{Name: "Ilsan (Jeongbalsan)", Location: models.Location{Lat: 37.659259, Lng: 126.773410}, Lines: []string{"3"}},
	{Name: "Daehwa", Location: models.Location{Lat: 37.676078, Lng: 126.747274}, Lines: []string{"3"}},
	{Name: "Guri", Location: models.Location{Lat: 37.603394, Lng: 127.143848}, Lines: []string{"Gyeongui-Jungang", "8"}},
	{Name: "Uijeongbu", Location: models.Location{Lat: 37.738621, Lng: 127.046048}, Lines: []string{"1"}},
}

// Hotspots returns a copy of the hub catalogue.
func Hotspots() []models.Hotspot {
	out := make([]models.Hotspot, len(hotspots))
	copy(out, hotspots)
	return out
}

// LoadCatalogue replaces the hub catalogue with the JSON file at path,
// for deployments outside the default metropolitan area. Call before
// serving; the catalogue is not safe to swap under concurrent readers.
// The file must contain at least one hotspot named like the default
// region, or the default falls back to the first entry.
func LoadCatalogue(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return fmt.Errorf("read hotspot catalogue: %w", err)
	}

	var loaded []models.Hotspot
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse hotspot catalogue: %w", err)
	}
	if len(loaded) == 0 {
		return fmt.Errorf("hotspot catalogue %s is empty", path)
	}

	hotspots = loaded
	return nil
}

// DefaultRegion is the region used when no midpoint can be computed.
func DefaultRegion() models.Hotspot {
	for _, h := range hotspots {
		if h.Name == defaultRegionName {
			return h
		}
	}
	// The catalogue always contains the default.
	return hotspots[0]
}

// NearestHotspot returns the catalogue entry closest to the given point.
func NearestHotspot(loc models.Location) models.Hotspot {
	best := hotspots[0]
	bestDist := geo.SquaredDegrees(loc, best.Location)
	for _, h := range hotspots[1:] {
		if d := geo.SquaredDegrees(loc, h.Location); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}

// SearchHotspots returns hubs whose name contains the query,
// case-insensitively. An empty query matches nothing.
func SearchHotspots(query string) []models.Hotspot {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []models.Hotspot
	for _, h := range hotspots {
		if strings.Contains(strings.ToLower(h.Name), q) {
			out = append(out, h)
		}
	}
	return out
}
