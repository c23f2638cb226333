package bot

// Rider-facing copy. The bot speaks Armenian; button labels and message
// bodies below are part of the product surface and change only with intent.
const (
	msgWelcome      = "Բարև ձեզ, սա HAYQ Way–ն է!"
	msgChooseAction = "Ընտրեք գործողությունը:"

	btnSendLocation  = "📍 Ուղարկել լոկացիա"
	btnSearchStop    = "🔎 Որոնել կանգառ"
	btnHelp          = "ℹ Օգնություն"
	btnShareLocation = "Send My Location"

	btnNext = "Հաջորդ"
	btnPrev = "Նախորդ"
	btnBack = "Հետ"

	msgHelp = `Բարի գալուստ HAYQ Way բոտ:

🚍 <b>Ընտրել երթուղի</b> – ընտրիր կանգառ ու տես ավտոբուսների համարները:
ℹ️ <b>Օգնություն / Help</b> – սա հաղորդագրությունն է, որ դու կարդում ես հիմա 😎

Հետադարձ կապի համար կարող ես գրել մեզ քո առաջարկներն ու խնդիրները /report հրամանով:`

	msgAskQuery       = "Մուտքագրեք կանգառի անունը, ավտոբուսի թիվը կամ ուղարկեք ձեր լոկացիան:"
	msgEmptyQuery     = "Խնդրում եմ մուտքագրեք ճիշտ տեքստ։"
	msgNothingFound   = "Ներեցեք, ոչինչ չի գտնվել։"
	msgNoNearbyRoutes = "Ներեցեք, մոտակա երթուղիներ չեն հայտնաբերվել։"
	msgNoNearbyBuses  = "Ներեցեք, այս շրջանի համար ավտոբուսներ չեն գտնվել։"
	msgNoStopsFound   = "Ներեցեք, կանգառներ չեն գտնվել։"
	msgRouteNotFound  = "Երթուղի չի գտնվել։"
	msgSearchExpired  = "Որոնումը հնացել է, սկսեք նորից։"
	msgUnavailable    = "Որոնումը ժամանակավորապես հասանելի չէ, փորձեք քիչ անց։"

	msgNearUsage     = "Խնդրում եմ ուղարկեք latitude և longitude: /near <lat> <lon>"
	msgBadCoords     = "Խնդրում ենք ճիշտ թվային կոորդինատներ։"
	msgShareLocation = "Խնդրում ենք սեղմեք ստորև կոճակը՝ ձեր լոկացիան ուղարկելու համար"
	msgNearbyHeader  = "📍 Ձեր մոտակայքում գտնված ավտոբուսների երթուղիներ՝"
	msgSearchNearby  = "📍 Մոտակա երթուղիները ձեր գտնվելու վայրի շուրջ՝"

	msgAskReport    = "Խնդրում ենք մուտքագրել կանգառի անունը կամ խնդիրը:"
	msgReportThanks = "Շնորհակալություն, ձեր հաղորդագրությունը ստացվեց:\n\n\"%s\""
	msgReportFailed = "Չհաջողվեց պահպանել հաղորդագրությունը, փորձեք կրկին։"

	nameUnknown     = "Անհայտ"
	nameUnknownStop = "Անհայտ կանգառ"
)

// greetings rotate above text-search results.
var greetings = []string{
	"Ահա կանգառների ցուցակը՝",
	"Նայիր այս երթուղիները՝",
	"Եկ, տեսնենք կանգառները՝",
	"Տես այս երթուղիները՝",
}
