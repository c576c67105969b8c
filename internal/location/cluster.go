package location

import (
	"math"
	"sort"

	"github.com/thinkscotty/newsdesk/internal/models"
)

const earthRadiusKm = 6371.0

// Cluster groups tagged articles whose locations lie close together.
type Cluster struct {
	Label      string   `json:"label"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	ArticleIDs []string `json:"article_ids"`
}

// DistanceKm is the great-circle distance between two coordinates.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// ClusterArticles assigns each tagged article to the first cluster whose
// anchor is within radiusKm, or starts a new one. Clusters are returned
// largest first; untagged articles are skipped.
func ClusterArticles(articles []models.Article, radiusKm float64) []Cluster {
	var clusters []Cluster
	for _, a := range articles {
		if a.Location == nil {
			continue
		}
		loc := a.Location
		placed := false
		for i := range clusters {
			if DistanceKm(clusters[i].Latitude, clusters[i].Longitude, loc.Latitude, loc.Longitude) <= radiusKm {
				clusters[i].ArticleIDs = append(clusters[i].ArticleIDs, a.ID)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, Cluster{
				Label:      loc.DetectedLocation,
				Latitude:   loc.Latitude,
				Longitude:  loc.Longitude,
				ArticleIDs: []string{a.ID},
			})
		}
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].ArticleIDs) > len(clusters[j].ArticleIDs)
	})
	return clusters
}
