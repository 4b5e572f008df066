package screenscraper

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt decodes ids that ScreenScraper sends either as numbers or strings.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

// RegionText is a value localized by region code ("us", "eu", "wor", "ss").
type RegionText struct {
	Region string `json:"region"`
	Text   string `json:"text"`
}

// LanguageText is a value localized by language code ("en", "fr").
type LanguageText struct {
	Language string `json:"langue"`
	Text     string `json:"text"`
}

// IDText is a referenced entity with its display text.
type IDText struct {
	ID   FlexInt `json:"id"`
	Text string  `json:"text"`
}

// Genre carries localized genre names.
type Genre struct {
	ID    FlexInt        `json:"id"`
	Names []LanguageText `json:"noms"`
}

// Media is an artwork or video asset.
type Media struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Region string `json:"region"`
	Format string `json:"format"`
}

// ROMInfo describes the ROM ScreenScraper matched for a hash lookup.
type ROMInfo struct {
	ID        FlexInt `json:"id"`
	FileName  string  `json:"romfilename"`
	Serial    string  `json:"romserial"`
	Regions   string  `json:"romregions"`
	Languages string  `json:"romlangues"`
}

// Game is a ScreenScraper "jeu" record.
type Game struct {
	ID        FlexInt        `json:"id"`
	Names     []RegionText   `json:"noms"`
	Synopsis  []LanguageText `json:"synopsis"`
	Dates     []RegionText   `json:"dates"`
	Genres    []Genre        `json:"genres"`
	Medias    []Media        `json:"medias"`
	System    *IDText        `json:"systeme"`
	Publisher *IDText        `json:"editeur"`
	Developer *IDText        `json:"developpeur"`
	Rating    *IDText        `json:"note"`
	ROM       *ROMInfo       `json:"rom"`
	ROMs      []ROMInfo      `json:"roms"`
}

type infoResponse struct {
	Response struct {
		Game *Game `json:"jeu"`
	} `json:"response"`
}

type searchResponse struct {
	Response struct {
		Games []Game `json:"jeux"`
	} `json:"response"`
}
