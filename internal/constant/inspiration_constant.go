package constant

// Static inspiration material. The assistant prefers a freshly generated
// prompt from the model and falls back to these when generation fails.

var WritingPrompts = map[string][]string{
	"en": {
		"Write a scene where a character says goodbye to a place, not a person.",
		"Your narrator finds a letter addressed to someone with their name, written fifty years ago.",
		"Describe a family dinner entirely through what is not being said.",
		"A character returns an object they stole years ago. Write the return.",
		"Write the same minute twice: once from the liar, once from the one being lied to.",
		"Open a story with the sentence that would normally close it.",
		"A stranger knows your protagonist's nickname from childhood. Nobody alive should.",
		"Write a scene where the weather does the emotional work and the dialogue stays flat.",
	},
	"ru": {
		"Напиши сцену, где герой прощается с местом, а не с человеком.",
		"Рассказчик находит письмо, адресованное человеку с его именем, написанное пятьдесят лет назад.",
		"Опиши семейный ужин только через то, о чём молчат.",
		"Герой возвращает вещь, которую украл много лет назад. Напиши само возвращение.",
		"Напиши одну и ту же минуту дважды: от лица лжеца и от лица обманутого.",
		"Начни рассказ предложением, которым его обычно заканчивают.",
		"Незнакомец знает детское прозвище героя. Из живых его не знает никто.",
		"Напиши сцену, где всю эмоцию несёт погода, а диалог остаётся ровным.",
	},
}

var IdeaGenres = map[string][]string{
	"en": {"a quiet drama", "a ghost story", "a road novel", "a small-town mystery", "a workplace satire", "a coming-of-age story"},
	"ru": {"тихая драма", "история с привидением", "роман-путешествие", "детектив в маленьком городе", "сатира об офисе", "история взросления"},
}

var IdeaSettings = map[string][]string{
	"en": {"in a snowed-in train station", "in the last open library in town", "on a night ferry", "in a house being sold", "during a power outage", "at a resort in the off season"},
	"ru": {"на заметённом вокзале", "в последней открытой библиотеке города", "на ночном пароме", "в доме, который продают", "во время отключения света", "на курорте в мёртвый сезон"},
}

var IdeaConflicts = map[string][]string{
	"en": {"two people need the same thing and only one can have it", "a promise made to the dead gets in the way of the living", "someone must choose between being right and being kind", "a secret kept for protection starts doing damage", "help arrives from the one person the hero cannot forgive"},
	"ru": {"двоим нужно одно и то же, а достанется одному", "обещание мёртвым мешает живым", "нужно выбрать между правотой и добротой", "тайна, хранимая ради защиты, начинает вредить", "помощь приходит от единственного человека, которого герой не может простить"},
}

// Citation holds one craft quote with its attribution.
type Citation struct {
	Text   string
	Author string
}

var Citations = map[string][]Citation{
	"en": {
		{Text: "The scariest moment is always just before you start.", Author: "Stephen King"},
		{Text: "Kill your darlings, kill your darlings, even when it breaks your egocentric little scribbler's heart.", Author: "Stephen King"},
		{Text: "A story is a lie that tells the truth.", Author: "Robert McKee"},
		{Text: "Write with the door closed, rewrite with the door open.", Author: "Stephen King"},
		{Text: "Structure is the most important storytelling tool, and the least understood.", Author: "John Truby"},
	},
	"ru": {
		{Text: "Самый страшный момент — всегда перед тем, как начать.", Author: "Стивен Кинг"},
		{Text: "Убивайте своих любимцев, даже когда это разбивает ваше маленькое писательское сердце.", Author: "Стивен Кинг"},
		{Text: "История — это ложь, которая говорит правду.", Author: "Роберт Макки"},
		{Text: "Пишите при закрытой двери, переписывайте при открытой.", Author: "Стивен Кинг"},
		{Text: "Структура — главный и наименее понятый инструмент рассказчика.", Author: "Джон Труби"},
	},
}
