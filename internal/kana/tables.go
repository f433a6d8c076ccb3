package kana

// Tables are ordered the way a kana chart reads: by consonant row, then vowel.

var hiraganaBase = []Kana{
	{"あ", "a", GroupBase}, {"い", "i", GroupBase}, {"う", "u", GroupBase}, {"え", "e", GroupBase}, {"お", "o", GroupBase},
	{"か", "ka", GroupBase}, {"き", "ki", GroupBase}, {"く", "ku", GroupBase}, {"け", "ke", GroupBase}, {"こ", "ko", GroupBase},
	{"さ", "sa", GroupBase}, {"し", "shi", GroupBase}, {"す", "su", GroupBase}, {"せ", "se", GroupBase}, {"そ", "so", GroupBase},
	{"た", "ta", GroupBase}, {"ち", "chi", GroupBase}, {"つ", "tsu", GroupBase}, {"て", "te", GroupBase}, {"と", "to", GroupBase},
	{"な", "na", GroupBase}, {"に", "ni", GroupBase}, {"ぬ", "nu", GroupBase}, {"ね", "ne", GroupBase}, {"の", "no", GroupBase},
	{"は", "ha", GroupBase}, {"ひ", "hi", GroupBase}, {"ふ", "fu", GroupBase}, {"へ", "he", GroupBase}, {"ほ", "ho", GroupBase},
	{"ま", "ma", GroupBase}, {"み", "mi", GroupBase}, {"む", "mu", GroupBase}, {"め", "me", GroupBase}, {"も", "mo", GroupBase},
	{"や", "ya", GroupBase}, {"ゆ", "yu", GroupBase}, {"よ", "yo", GroupBase}, {"ら", "ra", GroupBase}, {"り", "ri", GroupBase},
	{"る", "ru", GroupBase}, {"れ", "re", GroupBase}, {"ろ", "ro", GroupBase}, {"わ", "wa", GroupBase}, {"を", "wo", GroupBase},
	{"ん", "n", GroupBase},
}

var hiraganaDakuten = []Kana{
	{"が", "ga", GroupDakuten}, {"ぎ", "gi", GroupDakuten}, {"ぐ", "gu", GroupDakuten}, {"げ", "ge", GroupDakuten}, {"ご", "go", GroupDakuten},
	{"ざ", "za", GroupDakuten}, {"じ", "ji", GroupDakuten}, {"ず", "zu", GroupDakuten}, {"ぜ", "ze", GroupDakuten}, {"ぞ", "zo", GroupDakuten},
	{"だ", "da", GroupDakuten}, {"ぢ", "ji", GroupDakuten}, {"づ", "zu", GroupDakuten}, {"で", "de", GroupDakuten}, {"ど", "do", GroupDakuten},
	{"ば", "ba", GroupDakuten}, {"び", "bi", GroupDakuten}, {"ぶ", "bu", GroupDakuten}, {"べ", "be", GroupDakuten}, {"ぼ", "bo", GroupDakuten},
	{"ぱ", "pa", GroupDakuten}, {"ぴ", "pi", GroupDakuten}, {"ぷ", "pu", GroupDakuten}, {"ぺ", "pe", GroupDakuten}, {"ぽ", "po", GroupDakuten},
}

var hiraganaCombos = []Kana{
	{"きゃ", "kya", GroupCombo}, {"きゅ", "kyu", GroupCombo}, {"きょ", "kyo", GroupCombo},
	{"ぎゃ", "gya", GroupCombo}, {"ぎゅ", "gyu", GroupCombo}, {"ぎょ", "gyo", GroupCombo},
	{"しゃ", "sha", GroupCombo}, {"しゅ", "shu", GroupCombo}, {"しょ", "sho", GroupCombo},
	{"じゃ", "ja", GroupCombo}, {"じゅ", "ju", GroupCombo}, {"じょ", "jo", GroupCombo},
	{"ちゃ", "cha", GroupCombo}, {"ちゅ", "chu", GroupCombo}, {"ちょ", "cho", GroupCombo},
	{"にゃ", "nya", GroupCombo}, {"にゅ", "nyu", GroupCombo}, {"にょ", "nyo", GroupCombo},
	{"ひゃ", "hya", GroupCombo}, {"ひゅ", "hyu", GroupCombo}, {"ひょ", "hyo", GroupCombo},
	{"びゃ", "bya", GroupCombo}, {"びゅ", "byu", GroupCombo}, {"びょ", "byo", GroupCombo},
	{"ぴゃ", "pya", GroupCombo}, {"ぴゅ", "pyu", GroupCombo}, {"ぴょ", "pyo", GroupCombo},
	{"みゃ", "mya", GroupCombo}, {"みゅ", "myu", GroupCombo}, {"みょ", "myo", GroupCombo},
	{"りゃ", "rya", GroupCombo}, {"りゅ", "ryu", GroupCombo}, {"りょ", "ryo", GroupCombo},
}

var katakanaBase = []Kana{
	{"ア", "a", GroupBase}, {"イ", "i", GroupBase}, {"ウ", "u", GroupBase}, {"エ", "e", GroupBase}, {"オ", "o", GroupBase},
	{"カ", "ka", GroupBase}, {"キ", "ki", GroupBase}, {"ク", "ku", GroupBase}, {"ケ", "ke", GroupBase}, {"コ", "ko", GroupBase},
	{"サ", "sa", GroupBase}, {"シ", "shi", GroupBase}, {"ス", "su", GroupBase}, {"セ", "se", GroupBase}, {"ソ", "so", GroupBase},
	{"タ", "ta", GroupBase}, {"チ", "chi", GroupBase}, {"ツ", "tsu", GroupBase}, {"テ", "te", GroupBase}, {"ト", "to", GroupBase},
	{"ナ", "na", GroupBase}, {"ニ", "ni", GroupBase}, {"ヌ", "nu", GroupBase}, {"ネ", "ne", GroupBase}, {"ノ", "no", GroupBase},
	{"ハ", "ha", GroupBase}, {"ヒ", "hi", GroupBase}, {"フ", "fu", GroupBase}, {"ヘ", "he", GroupBase}, {"ホ", "ho", GroupBase},
	{"マ", "ma", GroupBase}, {"ミ", "mi", GroupBase}, {"ム", "mu", GroupBase}, {"メ", "me", GroupBase}, {"モ", "mo", GroupBase},
	{"ヤ", "ya", GroupBase}, {"ユ", "yu", GroupBase}, {"ヨ", "yo", GroupBase}, {"ラ", "ra", GroupBase}, {"リ", "ri", GroupBase},
	{"ル", "ru", GroupBase}, {"レ", "re", GroupBase}, {"ロ", "ro", GroupBase}, {"ワ", "wa", GroupBase}, {"ヲ", "wo", GroupBase},
	{"ン", "n", GroupBase},
}

var katakanaDakuten = []Kana{
	{"ガ", "ga", GroupDakuten}, {"ギ", "gi", GroupDakuten}, {"グ", "gu", GroupDakuten}, {"ゲ", "ge", GroupDakuten}, {"ゴ", "go", GroupDakuten},
	{"ザ", "za", GroupDakuten}, {"ジ", "ji", GroupDakuten}, {"ズ", "zu", GroupDakuten}, {"ゼ", "ze", GroupDakuten}, {"ゾ", "zo", GroupDakuten},
	{"ダ", "da", GroupDakuten}, {"ヂ", "ji", GroupDakuten}, {"ヅ", "zu", GroupDakuten}, {"デ", "de", GroupDakuten}, {"ド", "do", GroupDakuten},
	{"バ", "ba", GroupDakuten}, {"ビ", "bi", GroupDakuten}, {"ブ", "bu", GroupDakuten}, {"ベ", "be", GroupDakuten}, {"ボ", "bo", GroupDakuten},
	{"パ", "pa", GroupDakuten}, {"ピ", "pi", GroupDakuten}, {"プ", "pu", GroupDakuten}, {"ペ", "pe", GroupDakuten}, {"ポ", "po", GroupDakuten},
}

var katakanaCombos = []Kana{
	{"キャ", "kya", GroupCombo}, {"キュ", "kyu", GroupCombo}, {"キョ", "kyo", GroupCombo},
	{"ギャ", "gya", GroupCombo}, {"ギュ", "gyu", GroupCombo}, {"ギョ", "gyo", GroupCombo},
	{"シャ", "sha", GroupCombo}, {"シュ", "shu", GroupCombo}, {"ショ", "sho", GroupCombo},
	{"ジャ", "ja", GroupCombo}, {"ジュ", "ju", GroupCombo}, {"ジョ", "jo", GroupCombo},
	{"チャ", "cha", GroupCombo}, {"チュ", "chu", GroupCombo}, {"チョ", "cho", GroupCombo},
	{"ニャ", "nya", GroupCombo}, {"ニュ", "nyu", GroupCombo}, {"ニョ", "nyo", GroupCombo},
	{"ヒャ", "hya", GroupCombo}, {"ヒュ", "hyu", GroupCombo}, {"ヒョ", "hyo", GroupCombo},
	{"ビャ", "bya", GroupCombo}, {"ビュ", "byu", GroupCombo}, {"ビョ", "byo", GroupCombo},
	{"ピャ", "pya", GroupCombo}, {"ピュ", "pyu", GroupCombo}, {"ピョ", "pyo", GroupCombo},
	{"ミャ", "mya", GroupCombo}, {"ミュ", "myu", GroupCombo}, {"ミョ", "myo", GroupCombo},
	{"リャ", "rya", GroupCombo}, {"リュ", "ryu", GroupCombo}, {"リョ", "ryo", GroupCombo},
}
