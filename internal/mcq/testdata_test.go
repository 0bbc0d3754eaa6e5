package mcq

const englishBlock = `# Language: English
Q1. Which body holds legislative power under the 1978 Constitution of Sri Lanka?
A. The President
B. Parliament
C. The Supreme Court
D. The Cabinet of Ministers
Answer: B
Explanation: Article 4(a) vests legislative power in Parliament.`

const sinhalaBlock = `# Language: Sinhala
Q1. 1978 ශ්‍රී ලංකා ආණ්ඩුක්‍රම ව්‍යවස්ථාව යටතේ ව්‍යවස්ථාදායක බලය හිමි වන්නේ කුමන ආයතනයටද?
A. ජනාධිපති
B. පාර්ලිමේන්තුව
C. ශ්‍රේෂ්ඨාධිකරණය
D. අමාත්‍ය මණ්ඩලය
Answer: B
Explanation: 4(අ) ව්‍යවස්ථාව අනුව ව්‍යවස්ථාදායක බලය පාර්ලිමේන්තුවට හිමි වේ.`

const tamilBlock = `# Language: Tamil
Q1. 1978 இலங்கை அரசியலமைப்பின் கீழ் சட்டவாக்க அதிகாரம் எந்த அமைப்பிடம் உள்ளது?
A. ஜனாதிபதி
B. பாராளுமன்றம்
C. உச்ச நீதிமன்றம்
D. அமைச்சரவை
Answer: B
Explanation: உறுப்புரை 4(அ) சட்டவாக்க அதிகாரத்தை பாராளுமன்றத்திற்கு வழங்குகிறது.`

const bundle = englishBlock + "\n---\n" + sinhalaBlock + "\n---\n" + tamilBlock + "\n"
