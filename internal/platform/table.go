package platform

// Hasheous reuses IGDB platform ids; init copies them when left zero.
var table = []Identity{
	{Slug: "nes", Name: "Nintendo Entertainment System", Aliases: []string{"famicom", "fc"},
		IGDB: 18, MobyGames: 22, ScreenScraper: 3, RetroAchievements: 7, TGDB: 7,
		LaunchBox: "Nintendo Entertainment System", HLTB: "NES"},
	{Slug: "fds", Name: "Famicom Disk System", Aliases: []string{"famicom_disk_system"},
		IGDB: 51, MobyGames: 22, ScreenScraper: 106, RetroAchievements: 7, TGDB: 4936,
		LaunchBox: "Nintendo Famicom Disk System", HLTB: "NES"},
	{Slug: "snes", Name: "Super Nintendo Entertainment System", Aliases: []string{"sfc", "super_famicom", "super_nintendo"},
		IGDB: 19, MobyGames: 15, ScreenScraper: 4, RetroAchievements: 3, TGDB: 6,
		LaunchBox: "Super Nintendo Entertainment System", HLTB: "Super Nintendo"},
	{Slug: "n64", Name: "Nintendo 64", Aliases: []string{"nintendo_64"},
		IGDB: 4, MobyGames: 9, ScreenScraper: 14, RetroAchievements: 2, TGDB: 3,
		LaunchBox: "Nintendo 64", HLTB: "Nintendo 64"},
	{Slug: "gb", Name: "Game Boy", Aliases: []string{"gameboy", "game_boy"},
		IGDB: 33, MobyGames: 10, ScreenScraper: 9, RetroAchievements: 4, TGDB: 4,
		LaunchBox: "Nintendo Game Boy", HLTB: "Game Boy"},
	{Slug: "gbc", Name: "Game Boy Color", Aliases: []string{"gameboy_color", "game_boy_color"},
		IGDB: 22, MobyGames: 11, ScreenScraper: 10, RetroAchievements: 6, TGDB: 41,
		LaunchBox: "Nintendo Game Boy Color", HLTB: "Game Boy Color"},
	{Slug: "gba", Name: "Game Boy Advance", Aliases: []string{"gameboy_advance", "game_boy_advance"},
		IGDB: 24, MobyGames: 12, ScreenScraper: 12, RetroAchievements: 5, TGDB: 5,
		LaunchBox: "Nintendo Game Boy Advance", HLTB: "Game Boy Advance"},
	{Slug: "nds", Name: "Nintendo DS", Aliases: []string{"ds", "nintendo_ds"},
		IGDB: 20, MobyGames: 44, ScreenScraper: 15, RetroAchievements: 18, TGDB: 8,
		LaunchBox: "Nintendo DS", HLTB: "Nintendo DS"},
	{Slug: "3ds", Name: "Nintendo 3DS", Aliases: []string{"n3ds", "nintendo_3ds"},
		IGDB: 37, MobyGames: 101, ScreenScraper: 17, RetroAchievements: 62, TGDB: 4912,
		LaunchBox: "Nintendo 3DS", HLTB: "Nintendo 3DS"},
	{Slug: "ngc", Name: "Nintendo GameCube", Aliases: []string{"gc", "gamecube"},
		IGDB: 21, MobyGames: 14, ScreenScraper: 13, RetroAchievements: 16, TGDB: 2,
		LaunchBox: "Nintendo GameCube", HLTB: "Nintendo GameCube"},
	{Slug: "wii", Name: "Wii", Aliases: []string{"nintendo_wii"},
		IGDB: 5, MobyGames: 82, ScreenScraper: 16, RetroAchievements: 19, TGDB: 9,
		LaunchBox: "Nintendo Wii", HLTB: "Wii"},
	{Slug: "genesis", Name: "Sega Mega Drive/Genesis", Aliases: []string{"md", "megadrive", "mega_drive", "genesis-slash-megadrive"},
		IGDB: 29, MobyGames: 16, ScreenScraper: 1, RetroAchievements: 1, TGDB: 18,
		LaunchBox: "Sega Genesis", HLTB: "Sega Mega Drive/Genesis"},
	{Slug: "sms", Name: "Sega Master System", Aliases: []string{"mastersystem", "master_system"},
		IGDB: 64, MobyGames: 26, ScreenScraper: 2, RetroAchievements: 11, TGDB: 35,
		LaunchBox: "Sega Master System", HLTB: "Sega Master System"},
	{Slug: "gamegear", Name: "Sega Game Gear", Aliases: []string{"gg", "game_gear"},
		IGDB: 35, MobyGames: 25, ScreenScraper: 21, RetroAchievements: 15, TGDB: 20,
		LaunchBox: "Sega Game Gear", HLTB: "Sega Game Gear"},
	{Slug: "segacd", Name: "Sega CD", Aliases: []string{"sega_cd", "megacd", "mega_cd"},
		IGDB: 78, MobyGames: 20, ScreenScraper: 20, RetroAchievements: 9, TGDB: 21,
		LaunchBox: "Sega CD", HLTB: "Sega CD"},
	{Slug: "sega32", Name: "Sega 32X", Aliases: []string{"32x", "sega32x", "sega_32x"},
		IGDB: 30, MobyGames: 21, ScreenScraper: 19, RetroAchievements: 10, TGDB: 33,
		LaunchBox: "Sega 32X", HLTB: "Sega 32X"},
	{Slug: "saturn", Name: "Sega Saturn", Aliases: []string{"sega_saturn"},
		IGDB: 32, MobyGames: 23, ScreenScraper: 22, RetroAchievements: 39, TGDB: 17,
		LaunchBox: "Sega Saturn", HLTB: "Sega Saturn"},
	{Slug: "dc", Name: "Dreamcast", Aliases: []string{"dreamcast", "sega_dreamcast"},
		IGDB: 23, MobyGames: 8, ScreenScraper: 23, RetroAchievements: 40, TGDB: 16,
		LaunchBox: "Sega Dreamcast", HLTB: "Dreamcast"},
	{Slug: "psx", Name: "PlayStation", Aliases: []string{"ps", "ps1", "playstation"},
		IGDB: 7, MobyGames: 6, ScreenScraper: 57, RetroAchievements: 12, TGDB: 10,
		LaunchBox: "Sony Playstation", HLTB: "PlayStation"},
	{Slug: "ps2", Name: "PlayStation 2", Aliases: []string{"playstation2", "playstation_2"},
		IGDB: 8, MobyGames: 7, ScreenScraper: 58, RetroAchievements: 21, TGDB: 11,
		LaunchBox: "Sony Playstation 2", HLTB: "PlayStation 2"},
	{Slug: "psp", Name: "PlayStation Portable", Aliases: []string{"playstation_portable"},
		IGDB: 38, MobyGames: 46, ScreenScraper: 61, RetroAchievements: 41, TGDB: 13,
		LaunchBox: "Sony PSP", HLTB: "PlayStation Portable"},
	{Slug: "atari2600", Name: "Atari 2600", Aliases: []string{"2600", "a2600", "vcs"},
		IGDB: 59, MobyGames: 28, ScreenScraper: 26, RetroAchievements: 25, TGDB: 22,
		LaunchBox: "Atari 2600", HLTB: "Atari 2600"},
	{Slug: "lynx", Name: "Atari Lynx", Aliases: []string{"atari_lynx"},
		IGDB: 61, MobyGames: 18, ScreenScraper: 28, RetroAchievements: 13, TGDB: 4924,
		LaunchBox: "Atari Lynx", HLTB: "Atari Lynx"},
	{Slug: "tg16", Name: "TurboGrafx-16/PC Engine", Aliases: []string{"pce", "pcengine", "pc_engine", "turbografx16"},
		IGDB: 86, MobyGames: 40, ScreenScraper: 31, RetroAchievements: 8, TGDB: 34,
		LaunchBox: "NEC TurboGrafx-16", HLTB: "TurboGrafx-16"},
	{Slug: "neogeoaes", Name: "Neo Geo AES", Aliases: []string{"neogeo", "neo_geo"},
		IGDB: 80, MobyGames: 36, ScreenScraper: 142, RetroAchievements: 27, TGDB: 24,
		LaunchBox: "SNK Neo Geo AES", HLTB: "Neo Geo"},
	{Slug: "arcade", Name: "Arcade", Aliases: []string{"mame", "fbneo"},
		IGDB: 52, MobyGames: 143, ScreenScraper: 75, RetroAchievements: 27, TGDB: 23,
		LaunchBox: "Arcade", HLTB: "Arcade"},
	{Slug: "win", Name: "PC (Microsoft Windows)", Aliases: []string{"pc", "windows"},
		IGDB: 6, MobyGames: 3, ScreenScraper: 138, RetroAchievements: 0, TGDB: 1,
		LaunchBox: "Windows", HLTB: "PC"},
	{Slug: "browser", Name: "Web Browser", Aliases: []string{"flash", "flashpoint"},
		IGDB: 82, MobyGames: 84, ScreenScraper: 0, RetroAchievements: 0, TGDB: 0,
		Flashpoint: "Flash"},
}
