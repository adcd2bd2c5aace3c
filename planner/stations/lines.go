// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stations

import "github.com/tabi-planner/japan-planner/planner/poi"

type Region string

const (
	Intercity Region = "intercity"
	Tokyo     Region = "tokyo"
	Osaka     Region = "osaka"
	Kyoto     Region = "kyoto"
	Nagoya    Region = "nagoya"
)

var Regions = []Region{Intercity, Tokyo, Osaka, Kyoto, Nagoya}

type Station struct {
	Name     string       `json:"name"`
	Position poi.Position `json:"position"`
}

type Line struct {
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description,omitempty"`
	Region      Region    `json:"region"`
	Stations    []Station `json:"stations"`
}

func st(name string, lat, lng float64) Station {
	return Station{Name: name, Position: poi.Position{Lat: lat, Lng: lng}}
}

var lines = []Line{
	{Name: "Tokaido Shinkansen", Color: "#0072BC", Description: "Tokyo to Osaka", Region: Intercity, Stations: []Station{
		st("Tokyo", 35.6812362, 139.7649361),
		st("Shinagawa", 35.6284713, 139.7387787),
		st("Shin-Yokohama", 35.5075428, 139.6166769),
		st("Odawara", 35.2564369, 139.1549223),
		st("Atami", 35.0950666, 139.0753693),
		st("Mishima", 35.1218833, 138.9123731),
		st("Shin-Fuji", 35.1420136, 138.6632214),
		st("Shizuoka", 34.9719986, 138.4101275),
		st("Kakegawa", 34.7692366, 138.0005077),
		st("Hamamatsu", 34.7040471, 137.7287234),
		st("Toyohashi", 34.7692433, 137.3914993),
		st("Mikawa-Anjo", 34.956581, 137.0800148),
		st("Nagoya", 35.1709456, 136.8815428),
		st("Gifu-Hashima", 35.3169363, 136.6857747),
		st("Maibara", 35.3137546, 136.290763),
		st("Kyoto", 34.9858126, 135.7586962),
		st("Shin-Osaka", 34.7336551, 135.5004553),
	}},
	{Name: "Sanyo Shinkansen", Color: "#009250", Description: "Osaka to Fukuoka", Region: Intercity, Stations: []Station{
		st("Shin-Osaka", 34.7336551, 135.5004553),
		st("Shin-Kobe", 34.6912754, 135.197438),
		st("Nishi-Akashi", 34.6690273, 134.9692993),
		st("Himeji", 34.8330939, 134.6897252),
		st("Okayama", 34.6662659, 133.9154937),
		st("Shin-Kurashiki", 34.5855256, 133.7679601),
		st("Fukuyama", 34.5012604, 133.3614783),
		st("Shin-Onomichi", 34.4295111, 133.1958359),
		st("Mihara", 34.4027039, 133.0801682),
		st("Higashi-Hiroshima", 34.3963276, 132.7363525),
		st("Hiroshima", 34.3973853, 132.4599466),
		st("Shin-Iwakuni", 34.1680398, 132.1548838),
		st("Tokuyama", 34.0502192, 131.8033295),
		st("Shin-Yamaguchi", 34.0980835, 131.3960195),
		st("Kokura", 33.8866736, 130.8830347),
		st("Hakata", 33.5901879, 130.4206434),
	}},
	{Name: "Tohoku Shinkansen", Color: "#E54C84", Description: "Tokyo to Aomori", Region: Intercity, Stations: []Station{
		st("Tokyo", 35.6812362, 139.7649361),
		st("Ueno", 35.7141311, 139.7774482),
		st("Omiya", 35.9059549, 139.6238938),
		st("Utsunomiya", 36.5592232, 139.8981128),
		st("Nasushiobara", 36.9389386, 140.0470536),
		st("Koriyama", 37.4107627, 140.3873254),
		st("Fukushima", 37.7604844, 140.4748498),
		st("Sendai", 38.2600929, 140.8797396),
		st("Morioka", 39.7015182, 141.1369885),
		st("Shin-Aomori", 40.822309, 140.6884241),
	}},
	{Name: "Hokuriku Shinkansen", Color: "#6F4F9E", Description: "Tokyo to Kanazawa", Region: Intercity, Stations: []Station{
		st("Tokyo", 35.6812362, 139.7649361),
		st("Omiya", 35.9059549, 139.6238938),
		st("Takasaki", 36.3211862, 139.0035035),
		st("Nagano", 36.6434706, 138.1888351),
		st("Toyama", 36.7045612, 137.2142699),
		st("Kanazawa", 36.5784964, 136.6486436),
	}},
	{Name: "Kyushu Shinkansen", Color: "#F08300", Description: "Fukuoka to Kagoshima", Region: Intercity, Stations: []Station{
		st("Hakata", 33.5901879, 130.4206434),
		st("Kurume", 33.316069, 130.5091183),
		st("Chikugo-Funagoya", 33.1405029, 130.5542622),
		st("Shin-Tosu", 33.3775008, 130.5066433),
		st("Kumamoto", 32.7904522, 130.7414464),
		st("Shin-Yatsushiro", 32.4988241, 130.6092702),
		st("Shin-Minamata", 32.1963663, 130.3969378),
		st("Izumi", 32.0901436, 130.3525804),
		st("Sendai (Kagoshima)", 31.8066339, 130.3007574),
		st("Kagoshima-Chuo", 31.5802581, 130.5418508),
	}},
	{Name: "Yamanote Line", Color: "#9ACD32", Region: Tokyo, Stations: []Station{
		st("Tokyo Station", 35.6812362, 139.7649361),
		st("Yurakucho", 35.6749192, 139.7628384),
		st("Shimbashi", 35.6661933, 139.7583319),
		st("Hamamatsucho", 35.6553187, 139.7574108),
		st("Tamachi", 35.6457361, 139.7476669),
		st("Shinagawa", 35.6284713, 139.7387787),
		st("Osaki", 35.6197176, 139.7282985),
		st("Gotanda", 35.6261511, 139.7233704),
		st("Meguro", 35.6339914, 139.7159333),
		st("Ebisu", 35.6465876, 139.7101609),
		st("Shibuya", 35.6580339, 139.7016358),
		st("Harajuku", 35.6702285, 139.7026975),
		st("Yoyogi", 35.6835186, 139.7023853),
		st("Shinjuku", 35.6896067, 139.7005713),
		st("Shin-Okubo", 35.7013585, 139.699399),
		st("Takadanobaba", 35.7121683, 139.703786),
		st("Mejiro", 35.7208365, 139.7068501),
		st("Ikebukuro", 35.7295087, 139.7109316),
		st("Otsuka", 35.7323627, 139.7286419),
		st("Sugamo", 35.7334734, 139.7394862),
		st("Komagome", 35.7365618, 139.7467757),
		st("Tabata", 35.738062, 139.7608953),
		st("Nishi-Nippori", 35.7324032, 139.7669865),
		st("Nippori", 35.7280426, 139.7706546),
		st("Uguisudani", 35.7219525, 139.7784688),
		st("Ueno", 35.7141311, 139.7774482),
		st("Okachimachi", 35.7075932, 139.7743181),
		st("Akihabara", 35.6983573, 139.7731188),
		st("Kanda", 35.691796, 139.770883),
	}},
	{Name: "Chuo Line", Color: "#FF4500", Region: Tokyo, Stations: []Station{
		st("Tokyo Station", 35.6812362, 139.7649361),
		st("Kanda", 35.691796, 139.770883),
		st("Ochanomizu", 35.6993854, 139.7652417),
		st("Suidobashi", 35.7016393, 139.7537889),
		st("Iidabashi", 35.7019041, 139.7448527),
		st("Ichigaya", 35.6945656, 139.7364759),
		st("Yotsuya", 35.686034, 139.7312731),
		st("Shinjuku", 35.6896067, 139.7005713),
	}},
	{Name: "Ginza Line", Color: "#FF9500", Region: Tokyo, Stations: []Station{
		st("Shibuya", 35.6580339, 139.7016358),
		st("Omotesando", 35.6659867, 139.7126907),
		st("Gaienmae", 35.670399, 139.7178192),
		st("Aoyama-Itchome", 35.6728706, 139.7236634),
		st("Akasaka-Mitsuke", 35.6766708, 139.7375322),
		st("Ginza", 35.6712074, 139.7636591),
		st("Ueno", 35.7141311, 139.7774482),
	}},
	{Name: "Marunouchi Line", Color: "#E60012", Region: Tokyo, Stations: []Station{
		st("Ikebukuro", 35.7295087, 139.7109316),
		st("Shin-Otsuka", 35.7261359, 139.7291777),
		st("Myogadani", 35.7173403, 139.7376411),
		st("Korakuen", 35.7074075, 139.7511747),
		st("Hongo-Sanchome", 35.7068724, 139.7595161),
		st("Tokyo Station", 35.6812362, 139.7649361),
		st("Ginza", 35.6712074, 139.7636591),
		st("Shinjuku", 35.6896067, 139.7005713),
	}},
	{Name: "Hibiya Line", Color: "#B5B5AC", Region: Tokyo, Stations: []Station{
		st("Ebisu", 35.6465876, 139.7101609),
		st("Hiro-o", 35.6507396, 139.7222827),
		st("Roppongi", 35.6641222, 139.729426),
		st("Kamiyacho", 35.6628454, 139.7452132),
		st("Kasumigaseki", 35.6732036, 139.7501247),
		st("Hibiya", 35.6745771, 139.7598203),
		st("Ginza", 35.6712074, 139.7636591),
		st("Higashi-Ginza", 35.6697003, 139.7671399),
		st("Tsukiji", 35.6679758, 139.772644),
		st("Hatchobori", 35.6751238, 139.7779836),
		st("Ueno", 35.7141311, 139.7774482),
	}},
	{Name: "Midosuji Line", Color: "#E5171F", Region: Osaka, Stations: []Station{
		st("Esaka", 34.7582284, 135.4948922),
		st("Shin-Osaka", 34.7336551, 135.5004553),
		st("Nishinakajima-Minamigata", 34.7254075, 135.4982095),
		st("Higashi-Mikuni", 34.7148539, 135.4960249),
		st("Shin-Midosuji", 34.704882, 135.4976343),
		st("Yodoyabashi", 34.6926981, 135.5016447),
		st("Umeda", 34.7036581, 135.499663),
		st("Namba", 34.668519, 135.5022535),
		st("Tennoji", 34.6479369, 135.5143744),
	}},
	{Name: "JR Loop Line", Color: "#F68B1E", Region: Osaka, Stations: []Station{
		st("Osaka Station", 34.7024853, 135.4937619),
		st("Shin-Osaka", 34.7336551, 135.5004553),
		st("Tennoji", 34.6479369, 135.5143744),
		st("Nishikujo", 34.681594, 135.4661942),
		st("Bentencho", 34.6770191, 135.4599252),
		st("Noda", 34.6812362, 135.4649361),
	}},
	{Name: "Karasuma Line", Color: "#007AC0", Region: Kyoto, Stations: []Station{
		st("Kokusaikaikan", 35.0454854, 135.7841015),
		st("Kyoto Station", 34.9858126, 135.7586962),
		st("Karasuma Oike", 35.0114274, 135.7588134),
		st("Kitaoji", 35.0429383, 135.7546001),
	}},
	{Name: "Tozai Line", Color: "#FFA500", Region: Kyoto, Stations: []Station{
		st("Uzumasa Tenjingawa", 35.0097985, 135.7140553),
		st("Karasuma Oike", 35.0114274, 135.7588134),
		st("Sanjo Keihan", 35.0095282, 135.7720851),
		st("Rokujizo", 34.9362574, 135.7996881),
	}},
	{Name: "Higashiyama Line", Color: "#F8B500", Region: Nagoya, Stations: []Station{
		st("Nagoya Station", 35.1709456, 136.8815428),
		st("Sakae", 35.1691887, 136.9090596),
		st("Higashiyama Koen", 35.1566467, 136.9755787),
		st("Fujigaoka", 35.1900023, 137.0443258),
	}},
	{Name: "Meijo Line", Color: "#CC007A", Region: Nagoya, Stations: []Station{
		st("Nagoya Station", 35.1709456, 136.8815428),
		st("Sakae", 35.1691887, 136.9090596),
		st("Kanayama", 35.1418736, 136.9016201),
		st("Aratama-bashi", 35.1275307, 136.9137566),
	}},
}
