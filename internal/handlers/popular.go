package handlers

import (
	"github.com/gin-gonic/gin"
)

type PopularArtwork struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Style       string `json:"style"`
	Artist      string `json:"artist"`
	Year        string `json:"year"`
}

// Curated starting points shown to users before they upload anything.
var popularArtworks = []PopularArtwork{
	{
		Title:       "The Starry Night",
		Description: "A famous painting by Vincent van Gogh depicting a swirling night sky over a village. This masterpiece showcases van Gogh's unique post-impressionist style with bold brushstrokes and vibrant colors.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/e/ea/Van_Gogh_-_Starry_Night_-_Google_Art_Project.jpg/1280px-Van_Gogh_-_Starry_Night_-_Google_Art_Project.jpg",
		Style:       "Post-Impressionism",
		Artist:      "Vincent van Gogh",
		Year:        "1889",
	},
	{
		Title:       "Mona Lisa",
		Description: "The world's most famous portrait by Leonardo da Vinci, known for her enigmatic smile. This Renaissance masterpiece demonstrates da Vinci's mastery of sfumato technique and psychological depth.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/e/ec/Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg/687px-Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg",
		Style:       "Renaissance",
		Artist:      "Leonardo da Vinci",
		Year:        "1503-1519",
	},
	{
		Title:       "The Scream",
		Description: "An iconic expressionist painting by Edvard Munch depicting a figure with an agonized expression against a blood-red sky. This work represents the anxiety of modern life and is one of the most recognizable images in art history.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c5/Edvard_Munch%2C_1893%2C_The_Scream%2C_oil%2C_tempera_and_pastel_on_cardboard%2C_91_x_73_cm%2C_National_Gallery_of_Norway.jpg/1280px-Edvard_Munch%2C_1893%2C_The_Scream%2C_oil%2C_tempera_and_pastel_on_cardboard%2C_91_x_73_cm%2C_National_Gallery_of_Norway.jpg",
		Style:       "Expressionism",
		Artist:      "Edvard Munch",
		Year:        "1893",
	},
	{
		Title:       "Guernica",
		Description: "A powerful anti-war painting by Pablo Picasso depicting the bombing of Guernica during the Spanish Civil War. This cubist masterpiece uses monochromatic colors and fragmented forms to convey the horrors of war.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/en/thumb/7/74/PicassoGuernica.jpg/1280px-PicassoGuernica.jpg",
		Style:       "Cubism",
		Artist:      "Pablo Picasso",
		Year:        "1937",
	},
	{
		Title:       "Water Lilies",
		Description: "A series of impressionist paintings by Claude Monet depicting his water lily pond at Giverny. These works represent Monet's fascination with light, reflection, and the changing effects of nature.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/8/8a/Claude_Monet_-_Water_Lilies_-_1919%2C_Metropolitan_Museum_of_Art.jpg/1280px-Claude_Monet_-_Water_Lilies_-_1919%2C_Metropolitan_Museum_of_Art.jpg",
		Style:       "Impressionism",
		Artist:      "Claude Monet",
		Year:        "1919",
	},
	{
		Title:       "The Persistence of Memory",
		Description: "A surrealist masterpiece by Salvador Dalí featuring melting clocks in a dreamlike landscape. This painting explores themes of time, memory, and the subconscious mind through Dalí's unique surrealist vision.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/en/thumb/d/dd/The_Persistence_of_Memory.jpg/1280px-The_Persistence_of_Memory.jpg",
		Style:       "Surrealism",
		Artist:      "Salvador Dalí",
		Year:        "1931",
	},
	{
		Title:       "The Birth of Venus",
		Description: "A Renaissance masterpiece by Sandro Botticelli depicting the goddess Venus emerging from the sea. This painting exemplifies the classical beauty and mythological themes characteristic of the Italian Renaissance.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/0/0b/Sandro_Botticelli_-_La_nascita_di_Venere_-_Google_Art_Project_-_edited.jpg/1280px-Sandro_Botticelli_-_La_nascita_di_Venere_-_Google_Art_Project_-_edited.jpg",
		Style:       "Renaissance",
		Artist:      "Sandro Botticelli",
		Year:        "1485",
	},
	{
		Title:       "Composition VII",
		Description: "An abstract painting by Wassily Kandinsky that represents a breakthrough in non-representational art. This work demonstrates Kandinsky's theory of spiritual art and the power of color and form to express emotion.",
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/4/4a/Vassily_Kandinsky%2C_1913_-_Composition_7.jpg/1280px-Vassily_Kandinsky%2C_1913_-_Composition_7.jpg",
		Style:       "Abstract Art",
		Artist:      "Wassily Kandinsky",
		Year:        "1913",
	},
}

func GetPopularArtworks(c *gin.Context) {
	RespondOK(c, popularArtworks)
}
