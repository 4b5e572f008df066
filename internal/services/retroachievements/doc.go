// Package retroachievements wraps the RetroAchievements web API.
//
// RetroAchievements exposes no hash endpoint, so the client downloads each
// console's game list (with hashes) once and caches it for a configurable
// TTL. Hash lookups and name searches are answered from that cache; game
// details come from API_GetGameExtended.
package retroachievements
