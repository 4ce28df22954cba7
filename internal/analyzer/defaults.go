package analyzer

// defaultStopWords is the built-in Spanish stop-word list applied to the
// word frequency table. Callers may supply their own via Options.
var defaultStopWords = []string{
	"de", "la", "que", "el", "en", "y", "a", "los", "se", "del", "las",
	"un", "por", "con", "no", "una", "su", "para", "es", "al", "lo",
	"como", "más", "o", "pero", "sus", "le", "ya", "fue", "este", "ha",
	"si", "porque", "esta", "son", "entre", "está", "cuando", "muy",
	"sin", "sobre", "ser", "tiene", "también", "me", "hasta", "hay",
	"donde", "han", "quien", "están", "estado", "desde", "todo", "nos",
	"durante", "todos", "uno", "les", "ni", "contra", "otros", "fueron",
	"ese", "eso", "había", "ante", "ellos", "e", "esto", "mí", "antes",
	"algunos", "qué", "unos", "yo", "otro", "otras", "otra", "él",
	"tanto", "esa", "estos", "mucho", "quienes", "nada", "muchos",
	"cual", "sea", "poco", "ella", "estar", "haber", "estas", "estaba",
	"estamos", "algunas", "algo", "nosotros", "te", "tu", "mi", "jaja",
	"jajaja",
}

// defaultPositiveWords and defaultNegativeWords drive the coarse keyword
// sentiment buckets. This is a first-match heuristic, not a scored model.
var defaultPositiveWords = []string{
	"gracias", "bien", "bueno", "genial", "excelente", "gusta",
	"encanta", "amor", "feliz", "jaja", "jajaja", "xd", "jiji", "jeje",
	"👍", "❤️", "😂", "😊", "😍", "🎉",
}

var defaultNegativeWords = []string{
	"mal", "triste", "odio", "terrible", "horrible", "asco", "pena",
	":(", "😭", "😠", "😡", "👎",
}
