package i18n

var russianMessages = map[string]string{
	KeyStartCommandReply: "Привет! Пришли мне ссылку на песню из любого стримингового сервиса, " +
		"и я отвечу ссылками на неё во всех остальных.\n\n" +
		"Попробуй: `https://open.spotify.com/track/0tgVpDi06FyKpA1z0VMD4v`\n\n" +
		"/services — список поддерживаемых сервисов",
	KeyServicesCommandReply: "Я понимаю ссылки из:\n" +
		"Spotify, Apple Music, iTunes, YouTube, YouTube Music, Google Play, " +
		"Pandora, Deezer, Tidal, Amazon Music, SoundCloud, Napster, " +
		"Яндекс.Музыки, Spinrilla и Shazam.",
	KeyListen:       "Где послушать:\n",
	KeyBuy:          "Где купить:\n",
	KeyNoDataByLink: "У меня нет данных по этой ссылке 😔",
	KeyNoMusicLinks: "В сообщении нет ссылок на музыку",
}
