package analysis

// stopwordsFor returns the stopword set for a language, falling back to an
// empty set so unlisted languages simply skip the stopword penalty.
func stopwordsFor(lang string) map[string]bool {
	return stopwordSets[lang]
}

var stopwordSets = map[string]map[string]bool{
	"en": wordSet(`the a an and or but if then than that this these those there here
		i you he she it we they me him them us my your his her its our their
		is are was were be been being am do does did done have has had having
		will would shall should can could may might must
		of in on at to from by with for as about into over after before between
		not no nor so too very just only also both each few more most other some such
		what which who whom when where why how all any because until while`),
	"es": wordSet(`el la los las un una unos unas y o pero si de del en a al por para con sin
		es son era eran fue fueron ser estar está están estaba
		que como cuando donde quien cual esto esta estos estas eso esa
		yo tú él ella nosotros ellos ellas me te se le lo les nos mi tu su sus no más muy`),
	"fr": wordSet(`le la les un une des et ou mais si de du en à au aux par pour avec sans
		est sont était étaient être avoir a ont avait
		que comme quand où qui quoi ce cette ces cela ça
		je tu il elle nous vous ils elles me te se lui leur mon ton son ses ne pas plus très`),
	"de": wordSet(`der die das ein eine einen einem einer und oder aber wenn von im in an auf zu
		mit für ohne bei nach vor über unter ist sind war waren sein haben hat hatte
		dass als wie wann wo wer was dies diese dieser dieses
		ich du er sie es wir ihr mich dich sich uns euch mein dein sein ihre nicht kein sehr`),
	"it": wordSet(`il lo la i gli le un uno una e o ma se di del in a al per con senza
		è sono era erano essere avere ha hanno aveva
		che come quando dove chi cosa questo questa questi queste quello quella
		io tu lui lei noi voi loro mi ti si ci vi mio tuo suo non più molto`),
	"pt": wordSet(`o a os as um uma uns umas e ou mas se de do da em no na para por com sem
		é são era eram ser estar está estão foi foram
		que como quando onde quem qual isto isso este esta esses essas
		eu tu ele ela nós eles elas me te se lhe nos meu teu seu sua não mais muito`),
}
