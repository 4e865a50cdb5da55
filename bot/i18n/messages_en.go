package i18n

var englishMessages = map[string]string{
	KeyStartCommandReply: "Hi! Send me a link to a song from any streaming service " +
		"and I will reply with links to the same song everywhere else.\n\n" +
		"Try it: `https://open.spotify.com/track/0tgVpDi06FyKpA1z0VMD4v`\n\n" +
		"/services — list of supported services",
	KeyServicesCommandReply: "I understand links from:\n" +
		"Spotify, Apple Music, iTunes, YouTube, YouTube Music, Google Play, " +
		"Pandora, Deezer, Tidal, Amazon Music, SoundCloud, Napster, " +
		"Yandex Music, Spinrilla and Shazam.",
	KeyListen:       "Where to listen:\n",
	KeyBuy:          "Where to buy:\n",
	KeyNoDataByLink: "I have no data for this link 😔",
	KeyNoMusicLinks: "I could not find any music links in your message",
}
